// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// TaskStateSample is one scheduler-state sample on a thread's track: the
// thread held State on CPU from TS until the next sample's TS (or, for the
// last sample, forever - though by construction the last sample is always
// the TaskNone terminal marker).
type TaskStateSample struct {
	TS    int64
	State TaskState
	CPU   uint8
}

// Event is a single point event on a track: a decoded kind plus up to four
// kind-specific 32-bit fields. TrackIdx/EventIdx are populated only for
// MSGPIPE_READ events that were paired with a write (see flow.go); a
// EventIdx of 0 means "unpaired".
type Event struct {
	TS         int64
	Kind       EventKind
	A, B, C, D uint32

	TrackIdx uint16
	EventIdx uint32
}

// Track is an ordered sequence of task-state samples and point events for a
// single thread (real or kernel-surrogate). Idx is this track's position in
// the trace's global, append-only track list, which is what TrackIdx/Follow
// reference - a stable handle that survives the idle-track reordering
// finalize.go performs within the kernel group.
type Track struct {
	Name string
	Idx  uint16
	Y    float64 // viewer layout cache; the core never reads this field

	Task  []TaskStateSample
	Event []Event
}

// Group is an ordered set of tracks belonging to one process (or, for pid
// 0, the synthetic kernel process).
type Group struct {
	Name   string
	Folded bool
	Tracks []*Track
}
