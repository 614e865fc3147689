package tracefs

// Static format text for the common tracepoints environments without a
// tracefs mount (CI sandboxes, containers without debugfs) still need
// descriptors for. Transcribed from the kernel's own format files; the
// numeric ids are placeholders since a program that can't read tracefs
// can't attach anyway, only inspect field layout.
const (
	schedSwitchFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:char prev_comm[16];	offset:8;	size:16;	signed:0;
field:pid_t prev_pid;	offset:24;	size:4;	signed:1;
field:int prev_prio;	offset:28;	size:4;	signed:1;
field:long prev_state;	offset:32;	size:8;	signed:1;
field:char next_comm[16];	offset:40;	size:16;	signed:0;
field:pid_t next_pid;	offset:56;	size:4;	signed:1;
field:int next_prio;	offset:60;	size:4;	signed:1;
`

	schedProcessExecFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:__data_loc char[] filename;	offset:8;	size:4;	signed:0;
field:pid_t pid;	offset:12;	size:4;	signed:1;
field:pid_t old_pid;	offset:16;	size:4;	signed:1;
`

	schedProcessExitFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:char comm[16];	offset:8;	size:16;	signed:0;
field:pid_t pid;	offset:24;	size:4;	signed:1;
field:int prio;	offset:28;	size:4;	signed:1;
`

	sysEnterExecveFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:int __syscall_nr;	offset:8;	size:4;	signed:1;
field:const char * filename;	offset:16;	size:8;	signed:0;
field:const char *const * argv;	offset:24;	size:8;	signed:0;
field:const char *const * envp;	offset:32;	size:8;	signed:0;
`

	sysExitExecveFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:int __syscall_nr;	offset:8;	size:4;	signed:1;
field:long ret;	offset:16;	size:8;	signed:1;
`

	rawSyscallsEnterFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:long id;	offset:8;	size:8;	signed:1;
field:unsigned long args[6];	offset:16;	size:48;	signed:0;
`

	rawSyscallsExitFormat = `
field:unsigned short common_type;	offset:0;	size:2;	signed:0;
field:unsigned char common_flags;	offset:2;	size:1;	signed:0;
field:unsigned char common_preempt_count;	offset:3;	size:1;	signed:0;
field:int common_pid;	offset:4;	size:4;	signed:1;

field:long id;	offset:8;	size:8;	signed:1;
field:long ret;	offset:16;	size:8;	signed:1;
`
)

// fallbackTable is built once from the format text above, so FallbackEvent
// never has to re-run the regex parser on every lookup.
var fallbackTable = buildFallbackTable()

func buildFallbackTable() map[cacheKey]*Event {
	type entry struct {
		category, name, format string
	}
	entries := []entry{
		{"sched", "sched_switch", schedSwitchFormat},
		{"sched", "sched_process_exec", schedProcessExecFormat},
		{"sched", "sched_process_exit", schedProcessExitFormat},
		{"syscalls", "sys_enter_execve", sysEnterExecveFormat},
		{"syscalls", "sys_exit_execve", sysExitExecveFormat},
		{"raw_syscalls", "sys_enter", rawSyscallsEnterFormat},
		{"raw_syscalls", "sys_exit", rawSyscallsExitFormat},
	}
	table := make(map[cacheKey]*Event, len(entries))
	for i, e := range entries {
		ev, err := ParseFormat(e.category, e.name, i, e.format)
		if err != nil {
			// The format text above is a fixed literal; a parse failure
			// here is a bug in this file, not a runtime condition.
			panic(err)
		}
		table[cacheKey{e.category, e.name}] = ev
	}
	return table
}

// FallbackEvent returns the built-in descriptor for a common tracepoint
// when tracefs itself is unavailable (test sandboxes, containers without
// debugfs).
func FallbackEvent(category, name string) (*Event, bool) {
	ev, ok := fallbackTable[cacheKey{category, name}]
	return ev, ok
}
