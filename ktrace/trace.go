// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"io"
	"os"
)

// maxCPU bounds the active[cpu] table. The format encodes a cpu index in a
// single byte, but real traces never approach that many CPUs; this keeps
// the table a small fixed array instead of a map.
const maxCPU = 256

// Trace owns every component described in the design notes (C1 through C9)
// and is the sole mutator of the object registry, kernel-thread table, and
// group/track model: nothing outside this package ever constructs a Track,
// Group, or Object directly, which is what lets finalize.go and query.go
// assume the invariants those constructors establish.
type Trace struct {
	objects  *Registry
	kthreads *KernelThreads
	clock    *Clock
	reporter Reporter

	groups      []*Group
	tracks      []*Track
	kernelGroup *Group

	active [maxCPU]*Object

	syscallNames map[uint32]string
	probeNames   map[uint32]string

	stats Stats
}

// New creates an empty Trace. A nil reporter discards all diagnostics.
func New(reporter Reporter) *Trace {
	if reporter == nil {
		reporter = NopReporter{}
	}
	tr := &Trace{
		reporter:     reporter,
		clock:        &Clock{},
		objects:      NewRegistry(reporter),
		kthreads:     &KernelThreads{},
		syscallNames: make(map[uint32]string),
		probeNames:   make(map[uint32]string),
	}
	tr.kernelGroup = tr.newGroup("Magenta Kernel")
	kernel := &Object{ID: 0, Kind: KindProcess, Group: tr.kernelGroup, Flags: ObjResolved}
	tr.objects.add(kernel, 0)
	return tr
}

// --- C5 mutators: the only code paths that ever grow a Track or Group. ---

func (tr *Trace) newGroup(name string) *Group {
	g := &Group{Name: name}
	tr.groups = append(tr.groups, g)
	return g
}

func (tr *Trace) newTrack(name string) *Track {
	t := &Track{
		Name: name,
		Idx:  uint16(len(tr.tracks)),
		Task: []TaskStateSample{{TS: 0, State: TaskNone, CPU: 0}},
	}
	tr.tracks = append(tr.tracks, t)
	return t
}

func (tr *Trace) groupAddTrack(g *Group, t *Track) {
	g.Tracks = append(g.Tracks, t)
}

func (tr *Trace) trackAppend(t *Track, ts int64, state TaskState, cpu uint8) {
	t.Task = append(t.Task, TaskStateSample{TS: ts, State: state, CPU: cpu})
}

func (tr *Trace) trackAddEvent(t *Track, ts int64, kind EventKind) *Event {
	t.Event = append(t.Event, Event{TS: ts, Kind: kind})
	return &t.Event[len(t.Event)-1]
}

// --- C3 find-or-create: the one path by which each kind enters the registry. ---

func (tr *Trace) findOrCreateProcess(id uint32, offset int64) *Object {
	if o, mismatched := tr.objects.find(id, KindProcess, offset); mismatched {
		return nil
	} else if o != nil {
		return o
	}
	g := tr.newGroup("unknown")
	return tr.objects.add(&Object{ID: id, Kind: KindProcess, Group: g}, offset)
}

func (tr *Trace) findOrCreateThread(id uint32, offset int64) *Object {
	if o, mismatched := tr.objects.find(id, KindThread, offset); mismatched {
		return nil
	} else if o != nil {
		return o
	}
	t := tr.newTrack("unknown")
	return tr.objects.add(&Object{ID: id, Kind: KindThread, Track: t}, offset)
}

func (tr *Trace) findOrCreateMsgPipe(id uint32, offset int64) *Object {
	if o, mismatched := tr.objects.find(id, KindMsgPipe, offset); mismatched {
		return nil
	} else if o != nil {
		return o
	}
	return tr.objects.add(&Object{ID: id, Kind: KindMsgPipe}, offset)
}

func (tr *Trace) findOrCreatePort(id uint32, offset int64) *Object {
	if o, mismatched := tr.objects.find(id, KindPort, offset); mismatched {
		return nil
	} else if o != nil {
		return o
	}
	return tr.objects.add(&Object{ID: id, Kind: KindPort}, offset)
}

// findOrCreateThreadForEvent resolves the thread a "regular" event acts on.
// A tid of 0 means the event belongs to no user thread (the kernel, or an
// idle context); regular events in that case are simply ignored, the way
// the original importer skipped tid 0 outside of CONTEXT_SWITCH.
func (tr *Trace) findOrCreateThreadForEvent(id uint32, offset int64) *Object {
	if id == 0 {
		return nil
	}
	return tr.findOrCreateThread(id, offset)
}

// --- C4 kernel-thread surrogate. ---

func (tr *Trace) kernelThread(id uint32) *Object {
	if o, ok := tr.kthreads.find(id); ok {
		return o
	}
	name := "kernel"
	if id&0x80000000 != 0 {
		name = "idle"
	}
	t := tr.newTrack(name)
	tr.groupAddTrack(tr.kernelGroup, t)
	o := &Object{ID: id, Kind: KindThread, Flags: ObjResolved, Track: t}
	tr.kthreads.add(o)
	return o
}

// --- High-level entry points wiring C1 through C8 together. ---

// Stats tallies ingestion counters reported by -stats; see finalize.go.
type Stats struct {
	Records         int64
	ContextSwitch   int64
	ProcessCreate   int64
	ProcessDelete   int64
	ThreadCreate    int64
	ThreadDelete    int64
	MsgpipeCreate   int64
	MsgpipeDelete   int64
	MsgpipeWrite    int64
	MsgpipeRead     int64
	TSFirst, TSLast int64
}

// Import reads every record from r, dispatching each one, then runs the
// finalizer. It stops early on a FormatError or IOError from the reader
// itself; a non-fatal diagnostic never stops ingestion.
func (tr *Trace) Import(r io.Reader, limitUnits uint32, hasLimit bool) error {
	return tr.ImportFunc(r, limitUnits, hasLimit, nil)
}

// ImportFunc behaves like Import, additionally invoking onRecord (if
// non-nil) with each record and its calibrated timestamp right after it is
// dispatched - the hook cmd/ktrace's -text mode uses to print a decode
// line per record without duplicating the ingestion loop.
func (tr *Trace) ImportFunc(r io.Reader, limitUnits uint32, hasLimit bool, onRecord func(*Record, int64)) error {
	rd := NewReader(r)
	if hasLimit {
		rd.SetLimit(limitUnits)
	}
	var tsLast int64
	for rd.Next() {
		rec := rd.Record()
		ns := tr.clock.ToNanos(rec.TSTicks)
		tr.stats.Records++
		if tr.stats.Records == 1 {
			tr.stats.TSFirst = ns
		}
		tsLast = ns
		tr.Dispatch(rec)
		if onRecord != nil {
			onRecord(rec, ns)
		}
	}
	tr.stats.TSLast = tsLast
	if err := rd.Err(); err != nil {
		return err
	}
	tr.Finalize(tsLast)
	return nil
}

// ToNanos converts a raw tick count using the trace's calibrated clock.
func (tr *Trace) ToNanos(ticks uint64) int64 { return tr.clock.ToNanos(ticks) }

// ImportFile opens path and imports it, matching the teacher's cmd/dump
// convenience wrapper around a bare *os.File.
func ImportFile(path string, reporter Reporter, limitUnits uint32, hasLimit bool) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TraceError{Kind: IOError, Err: err}
	}
	defer f.Close()

	tr := New(reporter)
	if err := tr.Import(f, limitUnits, hasLimit); err != nil {
		return tr, err
	}
	return tr, nil
}
