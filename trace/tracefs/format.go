// Package tracefs parses the kernel's textual tracepoint format files
// exposed under /sys/kernel/debug/tracing (or /sys/kernel/tracing) into
// typed field descriptors, with a per-process memoizing cache and a
// static fallback table for environments where tracefs isn't mounted.
package tracefs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field describes one tracepoint format field, parsed from a line like
// `field:pid_t prev_pid;	offset:24;	size:4;	signed:1;`.
type Field struct {
	Name      string
	Offset    int
	Size      int
	Signed    bool
	Type      string
	ArraySize int // 0 when the declarator carries no [N] suffix
}

// Event is a parsed tracepoint format descriptor: its tracepoint id, and
// its fields split into the kernel-common prefix (pid, flags, preempt
// count, ...) every tracepoint carries and the fields specific to this
// event.
type Event struct {
	Category     string
	Name         string
	ID           int
	CommonFields []Field
	Fields       []Field
}

// fieldLine matches one `field:` line from a tracepoint's format file.
// The type capture is lazy and ends at the whitespace before the first
// identifier followed by an optional [N] and `;`, so multi-word types ("unsigned long", "const char *") and
// array declarators ("char comm[16]") both parse correctly.
var fieldLine = regexp.MustCompile(`^\s*field:(.+?)\s+([A-Za-z_][A-Za-z0-9_]*)(\[(\d+)\])?;\s*offset:(\d+);\s*size:(\d+);\s*signed:(0|1);`)

// ParseFormat parses the contents of an `events/<cat>/<name>/format`
// file into an Event's field lists. id is the numeric tracepoint id, read
// separately from the sibling `id` file.
func ParseFormat(category, name string, id int, format string) (*Event, error) {
	ev := &Event{Category: category, Name: name, ID: id}
	for _, line := range strings.Split(format, "\n") {
		m := fieldLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		offset, err := strconv.Atoi(m[5])
		if err != nil {
			return nil, fmt.Errorf("tracefs: bad offset in line %q: %w", line, err)
		}
		size, err := strconv.Atoi(m[6])
		if err != nil {
			return nil, fmt.Errorf("tracefs: bad size in line %q: %w", line, err)
		}
		field := Field{
			Name:   m[2],
			Type:   strings.TrimSpace(m[1]),
			Offset: offset,
			Size:   size,
			Signed: m[7] == "1",
		}
		if m[4] != "" {
			arraySize, err := strconv.Atoi(m[4])
			if err != nil {
				return nil, fmt.Errorf("tracefs: bad array size in line %q: %w", line, err)
			}
			field.ArraySize = arraySize
		}
		if strings.HasPrefix(field.Name, "common_") {
			ev.CommonFields = append(ev.CommonFields, field)
		} else {
			ev.Fields = append(ev.Fields, field)
		}
	}
	return ev, nil
}

// FieldOffset returns the byte offset of the named field (common or
// event-specific), and whether it was found.
func (ev *Event) FieldOffset(name string) (int, bool) {
	f, ok := ev.field(name)
	if !ok {
		return 0, false
	}
	return f.Offset, true
}

// FieldSize returns the byte size of the named field, and whether it was
// found.
func (ev *Event) FieldSize(name string) (int, bool) {
	f, ok := ev.field(name)
	if !ok {
		return 0, false
	}
	return f.Size, true
}

// FieldType returns the declared C type of the named field, and whether
// it was found.
func (ev *Event) FieldType(name string) (string, bool) {
	f, ok := ev.field(name)
	if !ok {
		return "", false
	}
	return f.Type, true
}

func (ev *Event) field(name string) (Field, bool) {
	for _, f := range ev.Fields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range ev.CommonFields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
