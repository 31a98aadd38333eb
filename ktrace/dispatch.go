// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// Dispatch decodes rec's body according to its kind and applies its effect
// to the trace: resolving an object, appending a task-state sample, adding
// a point event, or some combination. This is the single entry point C1's
// Reader feeds records into.
func (tr *Trace) Dispatch(rec *Record) {
	ns := tr.clock.ToNanos(rec.TSTicks)
	kind := rec.Kind

	switch {
	case kind == EvtVersion:
		// Informational only; nothing in the model depends on the
		// producer's version number.

	case kind == EvtTicksPerMs:
		bd := newBufDecoder(rec.Body)
		lo := bd.u32()
		hi := bd.u32()
		tr.clock.SetTicksPerMs(uint64(lo) | uint64(hi)<<32)

	case kind == EvtProcName:
		bd := newBufDecoder(rec.Body)
		id := bd.u32()
		_ = bd.u32() // arg: unused for PROC_NAME
		tr.evtProcessName(rec.Offset, id, bd.name())

	case kind == EvtThreadName:
		bd := newBufDecoder(rec.Body)
		id := bd.u32()
		pid := bd.u32()
		tr.evtThreadName(rec.Offset, id, pid, bd.name())

	case kind == EvtKthreadName:
		bd := newBufDecoder(rec.Body)
		id := bd.u32()
		_ = bd.u32()
		tr.kernelThread(id).Track.Name = bd.name()

	case kind == EvtSyscallName:
		bd := newBufDecoder(rec.Body)
		id := bd.u32()
		_ = bd.u32()
		tr.syscallNames[id] = bd.name()

	case kind == EvtProbeName:
		bd := newBufDecoder(rec.Body)
		id := bd.u32()
		_ = bd.u32()
		tr.probeNames[id] = bd.name()

	case kind == EvtContextSwitch:
		bd := newBufDecoder(rec.Body)
		newtid := bd.u32()
		stateCPU := bd.u32()
		oldk := bd.u32()
		newk := bd.u32()
		state := TaskState(stateCPU >> 16)
		cpu := uint8(stateCPU & 0xff)
		tr.stats.ContextSwitch++
		tr.evtContextSwitch(rec.Offset, ns, rec.Tid, newtid, state, cpu, oldk, newk)

	case kind == EvtIrqEnter || kind == EvtIrqExit:
		cpu := uint8(rec.Tid & 0xff)
		irq := uint8((rec.Tid >> 8) & 0xff)
		tr.evtOnActive(ns, cpu, kind, uint32(cpu), uint32(irq), 0, 0)

	case kind == EvtSyscallEnter || kind == EvtSyscallExit:
		cpu := uint8(rec.Tid & 0xff)
		bd := newBufDecoder(rec.Body)
		num := bd.u32()
		tr.evtOnActive(ns, cpu, kind, num, 0, 0, 0)

	case kind == EvtPageFault:
		bd := newBufDecoder(rec.Body)
		addrHi := bd.u32()
		addrLo := bd.u32()
		flags := bd.u32()
		d := bd.u32()
		cpu := uint8(d & 0xff)
		tr.evtOnActive(ns, cpu, kind, addrHi, addrLo, flags, d)

	case kind >= EvtProbe:
		tr.evtProbe(ns, rec)

	case isRegularEvent(kind):
		t := tr.findOrCreateThreadForEvent(rec.Tid, rec.Offset)
		if t == nil {
			return
		}
		tr.dispatchRegular(ns, t, kind, rec)

	default:
		tr.reporter.Report(FormatError, rec.Offset, "unknown event kind %#x", uint16(kind))
	}
}

// dispatchRegular handles every event that acts on a single, already
// thread-resolved object (t): create/resolve calls for processes, threads,
// msgpipes, and ports, plus the point events that record a wait/queue
// operation on the acting thread's own track.
func (tr *Trace) dispatchRegular(ns int64, t *Object, kind EventKind, rec *Record) {
	bd := newBufDecoder(rec.Body)
	switch kind {
	case EvtObjectDelete:
		id := bd.u32()
		tr.evtObjectDelete(id)

	case EvtProcCreate:
		pid := bd.u32()
		tr.evtProcessCreate(rec.Offset, t, pid)

	case EvtProcStart:
		// Informational; no state change.

	case EvtThreadCreate:
		tid := bd.u32()
		pid := bd.u32()
		tr.evtThreadCreate(rec.Offset, t, tid, pid)

	case EvtThreadStart:
		// Informational; the thread's first CONTEXT_SWITCH is what
		// actually starts its task-state history.

	case EvtMsgpipeCreate:
		id := bd.u32()
		otherID := bd.u32()
		tr.evtMsgpipeCreate(rec.Offset, ns, t, id, otherID)

	case EvtMsgpipeWrite:
		id := bd.u32()
		bytes := bd.u32()
		handles := bd.u32()
		tr.evtMsgpipeWrite(rec.Offset, ns, t, id, bytes, handles)

	case EvtMsgpipeRead:
		id := bd.u32()
		bytes := bd.u32()
		handles := bd.u32()
		tr.evtMsgpipeRead(rec.Offset, ns, t, id, bytes, handles)

	case EvtPortCreate:
		id := bd.u32()
		tr.evtPortCreate(rec.Offset, t, id)

	case EvtPortQueue:
		id := bd.u32()
		e := tr.trackAddEvent(t.Track, ns, kind)
		e.A = id

	case EvtPortWait:
		id := bd.u32()
		e := tr.trackAddEvent(t.Track, ns, kind)
		e.A = id

	case EvtPortWaitDone:
		id := bd.u32()
		status := bd.u32()
		e := tr.trackAddEvent(t.Track, ns, kind)
		e.A, e.B = id, status

	case EvtWaitOne:
		handle := bd.u32()
		signals := bd.u32()
		timeoutLo := bd.u32()
		timeoutHi := bd.u32()
		e := tr.trackAddEvent(t.Track, ns, kind)
		e.A, e.B, e.C, e.D = handle, signals, timeoutLo, timeoutHi

	case EvtWaitOneDone:
		handle := bd.u32()
		pending := bd.u32()
		status := bd.u32()
		e := tr.trackAddEvent(t.Track, ns, kind)
		e.A, e.B, e.C = handle, pending, status
	}
}

// evtContextSwitch implements the scheduler-event effect shared by C6 and
// C4: the outgoing thread (or its kernel-thread surrogate, if tid is 0)
// gets the reported state appended; the incoming thread always gets
// TaskRunning appended, and becomes active on cpu.
func (tr *Trace) evtContextSwitch(offset, ns int64, oldtid, newtid uint32, state TaskState, cpu uint8, oldk, newk uint32) {
	if oldtid != 0 {
		t := tr.findOrCreateThread(oldtid, offset)
		if t != nil {
			tr.trackAppend(t.Track, ns, state, cpu)
		}
	} else {
		t := tr.kernelThread(oldk)
		tr.trackAppend(t.Track, ns, state, cpu)
	}

	var incoming *Object
	if newtid != 0 {
		incoming = tr.findOrCreateThread(newtid, offset)
	} else {
		incoming = tr.kernelThread(newk)
	}
	if incoming != nil {
		tr.trackAppend(incoming.Track, ns, TaskRunning, cpu)
		if int(cpu) < maxCPU {
			tr.active[cpu] = incoming
		}
	}
}

// evtOnActive attributes a CPU-keyed event (IRQ, syscall, page fault) to
// whichever thread is currently active on that CPU, per the active[cpu]
// table CONTEXT_SWITCH maintains. If nothing is active yet on cpu, the
// event is dropped: there is no track to attach it to.
func (tr *Trace) evtOnActive(ns int64, cpu uint8, kind EventKind, a, b, c, d uint32) {
	if int(cpu) >= maxCPU {
		return
	}
	th := tr.active[cpu]
	if th == nil {
		return
	}
	e := tr.trackAddEvent(th.Track, ns, kind)
	e.A, e.B, e.C, e.D = a, b, c, d
}

// evtProbe handles the user-defined point-event tag space (kind >=
// EvtProbe): a regular, thread-attributed event whose payload is either
// empty or two uint32 arguments, distinguished purely by body length.
func (tr *Trace) evtProbe(ns int64, rec *Record) {
	t := tr.findOrCreateThreadForEvent(rec.Tid, rec.Offset)
	if t == nil {
		return
	}
	e := tr.trackAddEvent(t.Track, ns, rec.Kind)
	switch len(rec.Body) {
	case 0:
	case 8:
		bd := newBufDecoder(rec.Body)
		e.A, e.B = bd.u32(), bd.u32()
	default:
		tr.reporter.Report(FormatError, rec.Offset, "probe %#x has unexpected body length %d", uint16(rec.Kind), len(rec.Body))
	}
}

func (tr *Trace) evtProcessName(offset int64, id uint32, name string) {
	p := tr.findOrCreateProcess(id, offset)
	if p != nil {
		p.Group.Name = name
	}
}

// evtThreadName sets a thread's track name and, if the thread has not yet
// been resolved by a THREAD_CREATE record, retroactively binds it to pid
// (when pid is nonzero) - a trace's name records are not guaranteed to
// arrive after the corresponding *_CREATE record.
func (tr *Trace) evtThreadName(offset int64, tid, pid uint32, name string) {
	t := tr.findOrCreateThread(tid, offset)
	if t == nil {
		return
	}
	t.Track.Name = name
	if !t.Resolved() && pid != 0 {
		p := tr.findOrCreateProcess(pid, offset)
		if p != nil {
			tr.groupAddTrack(p.Group, t.Track)
			t.Flags |= ObjResolved
			t.Creator = pid
		}
	}
}

func (tr *Trace) evtObjectDelete(id uint32) {
	obj := tr.objects.findAny(id)
	if obj == nil {
		return
	}
	obj.Flags |= ObjDeleted
	switch obj.Kind {
	case KindMsgPipe:
		tr.stats.MsgpipeDelete++
	case KindThread:
		tr.stats.ThreadDelete++
	case KindProcess:
		tr.stats.ProcessDelete++
	}
}

func (tr *Trace) evtProcessCreate(offset int64, creator *Object, pid uint32) {
	p := tr.findOrCreateProcess(pid, offset)
	if p == nil {
		return
	}
	if p.Resolved() {
		tr.reporter.Report(DoubleResolve, offset, "process %#x already created", pid)
		return
	}
	p.Flags |= ObjResolved
	p.Creator = creator.ID
	tr.stats.ProcessCreate++
}

func (tr *Trace) evtThreadCreate(offset int64, creator *Object, tid, pid uint32) {
	t := tr.findOrCreateThread(tid, offset)
	if t == nil {
		return
	}
	if t.Resolved() {
		tr.reporter.Report(DoubleResolve, offset, "thread %#x already created", tid)
		return
	}
	p := tr.findOrCreateProcess(pid, offset)
	if p == nil {
		return
	}
	t.Flags |= ObjResolved
	t.Creator = creator.ID
	tr.groupAddTrack(p.Group, t.Track)
	tr.stats.ThreadCreate++
}

func (tr *Trace) evtPortCreate(offset int64, creator *Object, id uint32) {
	p := tr.findOrCreatePort(id, offset)
	if p == nil {
		return
	}
	if p.Resolved() {
		tr.reporter.Report(DoubleResolve, offset, "port %#x already created", id)
		return
	}
	p.Flags |= ObjResolved
	p.Creator = creator.ID
}
