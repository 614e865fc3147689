// Package bpf is the single entry point most callers need: it composes
// the instruction assembler with every program-type DSL, so a caller
// building an XDP drop program or resolving a tracepoint format doesn't
// have to know that those live in separate packages underneath.
package bpf

import (
	"fmt"

	"go.bpfkit.dev/asm"
	"go.bpfkit.dev/ext"
	"go.bpfkit.dev/skops"
	"go.bpfkit.dev/tc"
	"go.bpfkit.dev/trace"
	"go.bpfkit.dev/xdp"
)

// Core assembler types, re-exported so straightforward callers never
// need to import asm directly.
type (
	Instruction  = asm.Instruction
	Instructions = asm.Instructions
	Item         = asm.Item
	Register     = asm.Register
)

// The eleven BPF virtual registers.
const (
	R0  = asm.R0
	R1  = asm.R1
	R2  = asm.R2
	R3  = asm.R3
	R4  = asm.R4
	R5  = asm.R5
	R6  = asm.R6
	R7  = asm.R7
	R8  = asm.R8
	R9  = asm.R9
	R10 = asm.R10
	FP  = asm.FP
)

// Assemble resolves labels and emits the final instruction stream. It is
// the same two-pass assembler every DSL builder's Build method drives
// internally; most callers reach it only indirectly, through a DSL
// builder or Program.
func Assemble(items ...Item) (Instructions, error) {
	return asm.Assemble(items...)
}

// Program is the assembled, licensed output of a build: instructions
// ready for loading under an ELF section name. It is equivalent to
// calling Assemble and attaching a license and program type, bundled
// into the one call a caller not using a DSL builder needs.
type Program = asm.Program

// NewProgram assembles items under the given program type (the kind of
// attachment, e.g. "xdp" or "kprobe/do_sys_open") and license.
func NewProgram(kind, license string, items ...Item) (*Program, error) {
	return asm.NewProgram(kind, license, items...)
}

// DSL builder aliases. Each mirrors its package's own New* constructor;
// the alias exists so a caller working across several program types in
// one file can do so without importing each DSL package by name.
type (
	XDPBuilder           = xdp.Builder
	TCBuilder            = tc.Builder
	SkLookupBuilder      = skops.LookupBuilder
	ProbeBuilder         = trace.ProbeBuilder
	RawTracepointBuilder = trace.RawTracepointBuilder
	FentryBuilder        = ext.FentryBuilder
	FexitBuilder         = ext.FexitBuilder
	LSMBuilder           = ext.LSMBuilder
	FlowDissectorBuilder = ext.FlowDissectorBuilder
	StructOpsBuilder     = ext.StructOpsBuilder
	IterBuilder          = ext.IterBuilder
	PerfEventBuilder     = ext.PerfEventBuilder
)

func NewXDPBuilder(name string) *XDPBuilder { return xdp.NewBuilder(name) }

func NewTCBuilder(dir tc.Direction, name string) *TCBuilder { return tc.NewBuilder(dir, name) }

func NewSkLookupBuilder() *SkLookupBuilder { return skops.NewLookupBuilder() }

func NewProbeBuilder(arch trace.Arch) *ProbeBuilder { return trace.NewProbeBuilder(arch) }

func NewRawTracepointBuilder() *RawTracepointBuilder { return trace.NewRawTracepointBuilder() }

func NewFentryBuilder(function string, btf ext.BTFResolver) *FentryBuilder {
	return ext.NewFentryBuilder(function, btf)
}

func NewFexitBuilder(function string, btf ext.BTFResolver) *FexitBuilder {
	return ext.NewFexitBuilder(function, btf)
}

func NewLSMBuilder(hook string, btf ext.BTFResolver) *LSMBuilder {
	return ext.NewLSMBuilder(hook, btf)
}

func NewFlowDissectorBuilder() *FlowDissectorBuilder { return ext.NewFlowDissectorBuilder() }

func NewStructOpsBuilder(structName string, callback ext.StructOpsCallback, btf ext.BTFResolver) *StructOpsBuilder {
	return ext.NewStructOpsBuilder(structName, callback, btf)
}

func NewIterBuilder(btfName string) *IterBuilder { return ext.NewIterBuilder(btfName) }

func NewPerfEventBuilder(regsSize int16) *PerfEventBuilder {
	return ext.NewPerfEventBuilder(regsSize)
}

// Verdict-keyword-to-integer conversions, for callers accepting a
// verdict as user-facing text (a config file, a CLI flag) rather than
// as a typed constant.

// ParseXDPAction translates an XDP verdict keyword ("pass", "drop",
// "tx", "redirect", "aborted"; matched exactly, lower case) to its Action
// value.
func ParseXDPAction(keyword string) (xdp.Action, error) {
	switch keyword {
	case "aborted":
		return xdp.Aborted, nil
	case "drop":
		return xdp.Drop, nil
	case "pass":
		return xdp.Pass, nil
	case "tx":
		return xdp.Tx, nil
	case "redirect":
		return xdp.Redirect, nil
	default:
		return 0, fmt.Errorf("bpf: unknown XDP action keyword %q", keyword)
	}
}

// ParseTCAction translates a TC verdict keyword ("ok", "shot",
// "reclassify", "pipe", "stolen", "queued", "repeat", "redirect",
// "unspec") to its Action value.
func ParseTCAction(keyword string) (tc.Action, error) {
	switch keyword {
	case "unspec":
		return tc.Unspec, nil
	case "ok":
		return tc.Ok, nil
	case "reclassify":
		return tc.Reclassify, nil
	case "shot":
		return tc.Shot, nil
	case "pipe":
		return tc.Pipe, nil
	case "stolen":
		return tc.Stolen, nil
	case "queued":
		return tc.Queued, nil
	case "repeat":
		return tc.Repeat, nil
	case "redirect":
		return tc.Redirect, nil
	default:
		return 0, fmt.Errorf("bpf: unknown TC action keyword %q", keyword)
	}
}

// ParseSkVerdict translates a socket-program verdict keyword ("pass",
// "drop") to its Verdict value.
func ParseSkVerdict(keyword string) (skops.Verdict, error) {
	switch keyword {
	case "drop":
		return skops.Drop, nil
	case "pass":
		return skops.Pass, nil
	default:
		return 0, fmt.Errorf("bpf: unknown socket verdict keyword %q", keyword)
	}
}

// ParseFlowVerdict translates a flow-dissector verdict keyword ("ok",
// "drop") to its FlowVerdict value.
func ParseFlowVerdict(keyword string) (ext.FlowVerdict, error) {
	switch keyword {
	case "ok":
		return ext.FlowOk, nil
	case "drop":
		return ext.FlowDrop, nil
	default:
		return 0, fmt.Errorf("bpf: unknown flow dissector verdict keyword %q", keyword)
	}
}

// ParseIterVerdict translates a BPF-iterator verdict keyword
// ("continue", "stop") to its IterVerdict value.
func ParseIterVerdict(keyword string) (ext.IterVerdict, error) {
	switch keyword {
	case "continue":
		return ext.IterContinue, nil
	case "stop":
		return ext.IterStop, nil
	default:
		return 0, fmt.Errorf("bpf: unknown iterator verdict keyword %q", keyword)
	}
}
