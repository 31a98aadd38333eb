// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Finalize closes out the model after the last record has been dispatched:
// every thread track gets a terminal TaskNone sample at tsLast, timestamps
// are rebased so the earliest real activity starts at zero, and the
// kernel group's idle tracks are moved to the front for display.
func (tr *Trace) Finalize(tsLast int64) {
	tr.finish(tsLast)
	tr.RebaseTimestamps()
	tr.reorderIdleTracks()
}

// finish appends a terminal (ts, TaskNone, 0) sample to every thread track,
// including kernel-thread surrogates, bracketing the sentinel each track
// began with.
func (tr *Trace) finish(ts int64) {
	tr.objects.forEach(func(o *Object) {
		if o.Kind == KindThread {
			tr.trackAppend(o.Track, ts, TaskNone, 0)
		}
	})
	for o := tr.kthreads.list; o != nil; o = o.next {
		tr.trackAppend(o.Track, ts, TaskNone, 0)
	}
}

// RebaseTimestamps subtracts the minimum first-real-timestamp seen across
// all tracks (ignoring each track's index-0 sentinel, which always stays
// at ts=0) from every other task sample and every event. It is idempotent:
// after the first call the minimum first-real-timestamp is by construction
// 0, so a second call subtracts 0 from everything.
func (tr *Trace) RebaseTimestamps() {
	tszero := int64(math.MaxInt64)
	for _, t := range tr.tracks {
		if len(t.Task) > 1 && t.Task[1].TS < tszero {
			tszero = t.Task[1].TS
		}
	}
	if tszero == math.MaxInt64 {
		tszero = 0
	}
	if tszero == 0 {
		return
	}
	for _, t := range tr.tracks {
		for i := 1; i < len(t.Task); i++ {
			t.Task[i].TS -= tszero
		}
		for i := range t.Event {
			t.Event[i].TS -= tszero
		}
	}
}

// reorderIdleTracks moves every "idle"-named track within the kernel group
// to the front, stably, so idle CPUs sort before active kernel threads in
// a rendered timeline.
func (tr *Trace) reorderIdleTracks() {
	g := tr.kernelGroup
	idle := make([]*Track, 0, len(g.Tracks))
	rest := make([]*Track, 0, len(g.Tracks))
	for _, t := range g.Tracks {
		if strings.HasPrefix(t.Name, "idle") {
			idle = append(idle, t)
		} else {
			rest = append(rest, t)
		}
	}
	g.Tracks = append(idle, rest...)
}

// Dump writes a human-readable summary of the ingestion counters to w,
// matching the -stats flag's contract (spec §6.2): diagnostic text, not a
// machine-parsed format.
func (s *Stats) Dump(w io.Writer) {
	fmt.Fprintf(w, "records:          %d\n", s.Records)
	fmt.Fprintf(w, "context switches: %d\n", s.ContextSwitch)
	fmt.Fprintf(w, "processes:        %d created, %d deleted\n", s.ProcessCreate, s.ProcessDelete)
	fmt.Fprintf(w, "threads:          %d created, %d deleted\n", s.ThreadCreate, s.ThreadDelete)
	fmt.Fprintf(w, "msgpipes:         %d created, %d deleted\n", s.MsgpipeCreate, s.MsgpipeDelete)
	fmt.Fprintf(w, "msgpipe I/O:      %d writes, %d reads\n", s.MsgpipeWrite, s.MsgpipeRead)
	fmt.Fprintf(w, "timespan:         %d ns .. %d ns\n", s.TSFirst, s.TSLast)
}
