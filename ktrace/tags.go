// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// EventKind is the low 16 bits of a record's tag: the kind of event the
// record describes. Values below EvtProbe are defined by this package and
// shared with the kernel producer; values at or above EvtProbe are a
// user-defined probe namespace populated at run time via PROBE_NAME records.
type EventKind uint16

// EvtProbe is the base of the user-defined probe tag space. Any kind at or
// above this value is a point event whose name comes from a PROBE_NAME
// record rather than from this package's constants.
const EvtProbe EventKind = 0x0800

const (
	EvtNone EventKind = 0

	EvtVersion    EventKind = 0x0001
	EvtTicksPerMs EventKind = 0x0002

	EvtProcCreate EventKind = 0x0010
	EvtProcStart  EventKind = 0x0011
	EvtProcName   EventKind = 0x0012

	EvtThreadCreate EventKind = 0x0020
	EvtThreadStart  EventKind = 0x0021
	EvtThreadName   EventKind = 0x0022
	EvtKthreadName  EventKind = 0x0023

	EvtContextSwitch EventKind = 0x0030

	EvtObjectDelete EventKind = 0x0040

	EvtMsgpipeCreate EventKind = 0x0050
	EvtMsgpipeWrite  EventKind = 0x0051
	EvtMsgpipeRead   EventKind = 0x0052

	EvtPortCreate   EventKind = 0x0060
	EvtPortQueue    EventKind = 0x0061
	EvtPortWait     EventKind = 0x0062
	EvtPortWaitDone EventKind = 0x0063

	EvtWaitOne     EventKind = 0x0070
	EvtWaitOneDone EventKind = 0x0071

	EvtIrqEnter EventKind = 0x0080
	EvtIrqExit  EventKind = 0x0081

	EvtSyscallEnter EventKind = 0x0090
	EvtSyscallExit  EventKind = 0x0091

	EvtPageFault EventKind = 0x00a0

	EvtSyscallName EventKind = 0x00b0
	EvtProbeName   EventKind = 0x00b1
)

// isRegularEvent reports whether kind is dispatched through the generic
// per-thread path: resolve rec.Tid to a Thread (creating it if necessary)
// and hand the decoded body to a kind-specific handler. Every other kind is
// "special": it is handled directly by Dispatch, usually because it needs
// something other than a plain thread lookup (the tick clock, a cross-CPU
// active-thread table, or a name table keyed by something other than a
// thread id).
func isRegularEvent(kind EventKind) bool {
	switch kind {
	case EvtObjectDelete,
		EvtProcCreate, EvtProcStart,
		EvtThreadCreate, EvtThreadStart,
		EvtMsgpipeCreate, EvtMsgpipeWrite, EvtMsgpipeRead,
		EvtPortCreate, EvtPortQueue, EvtPortWait, EvtPortWaitDone,
		EvtWaitOne, EvtWaitOneDone:
		return true
	}
	return false
}

// TaskState is the scheduler state recorded at a point in time on a thread's
// track. TaskNone is the sentinel/terminal marker that brackets every
// thread's task-state history (spec invariant: tracks begin with an
// implicit ts=0 TaskNone sample and end with a TaskNone sample at the last
// timestamp seen in the trace).
type TaskState uint8

const (
	TaskNone TaskState = iota
	TaskSuspended
	TaskReady
	TaskRunning
	TaskBlocked
	TaskSleeping
	TaskDead
)

// Kind is the discriminant of the four typed object kinds the registry
// tracks: a single tagged-variant Object rather than four separate
// hierarchies, since every kind shares the id/resolved/creator bookkeeping
// and only a couple of fields differ per kind.
type Kind uint8

const (
	KindProcess Kind = iota
	KindThread
	KindMsgPipe
	KindPort
)
