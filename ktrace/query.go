// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import "sort"

// Groups returns every group in creation order, the synthetic kernel
// process (the "Magenta Kernel" group) first.
func (tr *Trace) Groups() []*Group { return tr.groups }

// TrackByIndex returns the track with the given stable index, as set at
// creation time (see Track.Idx) and referenced by MessageDescriptor /
// Event.TrackIdx. It survives the idle-track reorder finalize.go performs.
func (tr *Trace) TrackByIndex(idx uint16) *Track { return tr.tracks[idx] }

// SyscallName resolves a syscall number against the table built from
// SYSCALL_NAME records.
func (tr *Trace) SyscallName(n uint32) (string, bool) {
	s, ok := tr.syscallNames[n]
	return s, ok
}

// ProbeName resolves a probe tag against the table built from PROBE_NAME
// records.
func (tr *Trace) ProbeName(tag uint32) (string, bool) {
	s, ok := tr.probeNames[tag]
	return s, ok
}

// Stats returns the ingestion counters accumulated so far.
func (tr *Trace) Stats() Stats { return tr.stats }

// TaskSegment is a [TS, TSEnd) interval of constant scheduler state,
// derived from two adjacent TaskStateSamples.
type TaskSegment struct {
	TS, TSEnd int64
	State     TaskState
	CPU       uint8
}

// TaskSegmentsIn returns every segment of t's task-state history that
// overlaps [t0, t1), located via binary search over the (timestamp-sorted,
// by construction) Task slice rather than a linear scan - the same
// lower_bound-over-a-sorted-slice technique perfsession's Ranges type uses
// for its own interval lookups.
func (t *Track) TaskSegmentsIn(t0, t1 int64) []TaskSegment {
	if len(t.Task) < 2 {
		return nil
	}
	i := sort.Search(len(t.Task), func(i int) bool { return t.Task[i].TS >= t0 })
	if i > 0 {
		i--
	}
	var out []TaskSegment
	for ; i < len(t.Task)-1; i++ {
		start, end := t.Task[i].TS, t.Task[i+1].TS
		if end <= t0 {
			continue
		}
		if start >= t1 {
			break
		}
		out = append(out, TaskSegment{TS: start, TSEnd: end, State: t.Task[i].State, CPU: t.Task[i].CPU})
	}
	return out
}

// EventsIn returns the slice of t's events with TS in [t0, t1), located by
// binary search since Event.TS is non-decreasing by construction (events
// are appended to a track in record-arrival, hence timestamp, order).
func (t *Track) EventsIn(t0, t1 int64) []Event {
	lo := sort.Search(len(t.Event), func(i int) bool { return t.Event[i].TS >= t0 })
	hi := sort.Search(len(t.Event), func(i int) bool { return t.Event[i].TS >= t1 })
	return t.Event[lo:hi]
}

// Follow dereferences a MSGPIPE_READ event's cross-track reference, if it
// has one, returning the track and write event it was paired with.
func (tr *Trace) Follow(e *Event) (track *Track, write *Event, ok bool) {
	if e.EventIdx == 0 {
		return nil, nil, false
	}
	wt := tr.tracks[e.TrackIdx]
	return wt, &wt.Event[e.EventIdx-1], true
}
