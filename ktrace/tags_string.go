// String methods for EventKind, TaskState and Kind, written by hand in the
// style of stringer output.

package ktrace

import "strconv"

func (i EventKind) String() string {
	switch i {
	case EvtNone:
		return "NONE"
	case EvtVersion:
		return "VERSION"
	case EvtTicksPerMs:
		return "TICKS_PER_MS"
	case EvtProcCreate:
		return "PROC_CREATE"
	case EvtProcStart:
		return "PROC_START"
	case EvtProcName:
		return "PROC_NAME"
	case EvtThreadCreate:
		return "THREAD_CREATE"
	case EvtThreadStart:
		return "THREAD_START"
	case EvtThreadName:
		return "THREAD_NAME"
	case EvtKthreadName:
		return "KTHREAD_NAME"
	case EvtContextSwitch:
		return "CONTEXT_SWITCH"
	case EvtObjectDelete:
		return "OBJECT_DELETE"
	case EvtMsgpipeCreate:
		return "MSGPIPE_CREATE"
	case EvtMsgpipeWrite:
		return "MSGPIPE_WRITE"
	case EvtMsgpipeRead:
		return "MSGPIPE_READ"
	case EvtPortCreate:
		return "PORT_CREATE"
	case EvtPortQueue:
		return "PORT_QUEUE"
	case EvtPortWait:
		return "PORT_WAIT"
	case EvtPortWaitDone:
		return "PORT_WAIT_DONE"
	case EvtWaitOne:
		return "WAIT_ONE"
	case EvtWaitOneDone:
		return "WAIT_ONE_DONE"
	case EvtIrqEnter:
		return "IRQ_ENTER"
	case EvtIrqExit:
		return "IRQ_EXIT"
	case EvtSyscallEnter:
		return "SYSCALL_ENTER"
	case EvtSyscallExit:
		return "SYSCALL_EXIT"
	case EvtPageFault:
		return "PAGE_FAULT"
	case EvtSyscallName:
		return "SYSCALL_NAME"
	case EvtProbeName:
		return "PROBE_NAME"
	}
	if i >= EvtProbe {
		return "PROBE(0x" + strconv.FormatUint(uint64(i), 16) + ")"
	}
	return "EVT(0x" + strconv.FormatUint(uint64(i), 16) + ")"
}

func (i TaskState) String() string {
	switch i {
	case TaskNone:
		return "None"
	case TaskSuspended:
		return "Suspended"
	case TaskReady:
		return "Ready"
	case TaskRunning:
		return "Running"
	case TaskBlocked:
		return "Blocked"
	case TaskSleeping:
		return "Sleeping"
	case TaskDead:
		return "Dead"
	}
	return "TaskState(" + strconv.Itoa(int(i)) + ")"
}

func (i Kind) String() string {
	switch i {
	case KindProcess:
		return "Process"
	case KindThread:
		return "Thread"
	case KindMsgPipe:
		return "MsgPipe"
	case KindPort:
		return "Port"
	}
	return "Kind(" + strconv.Itoa(int(i)) + ")"
}
