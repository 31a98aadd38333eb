// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestTrack() *Track {
	return &Track{
		Name: "t",
		Task: []TaskStateSample{
			{TS: 0, State: TaskNone, CPU: 0},
			{TS: 100, State: TaskRunning, CPU: 0},
			{TS: 200, State: TaskBlocked, CPU: 0},
			{TS: 300, State: TaskRunning, CPU: 1},
			{TS: 400, State: TaskNone, CPU: 0},
		},
		Event: []Event{
			{TS: 50, Kind: EvtWaitOne},
			{TS: 150, Kind: EvtWaitOneDone},
			{TS: 250, Kind: EvtPortQueue},
			{TS: 350, Kind: EvtPortWait},
		},
	}
}

func TestTaskSegmentsInMiddleWindow(t *testing.T) {
	tr := buildTestTrack()
	segs := tr.TaskSegmentsIn(150, 350)
	require.Len(t, segs, 3)
	require.Equal(t, TaskSegment{TS: 100, TSEnd: 200, State: TaskRunning, CPU: 0}, segs[0])
	require.Equal(t, TaskSegment{TS: 200, TSEnd: 300, State: TaskBlocked, CPU: 0}, segs[1])
	require.Equal(t, TaskSegment{TS: 300, TSEnd: 400, State: TaskRunning, CPU: 1}, segs[2])
}

func TestTaskSegmentsInFullWindow(t *testing.T) {
	tr := buildTestTrack()
	segs := tr.TaskSegmentsIn(0, 1000)
	require.Len(t, segs, 4)
}

func TestTaskSegmentsInEmptyTrack(t *testing.T) {
	tr := &Track{Task: []TaskStateSample{{TS: 0, State: TaskNone}}}
	require.Nil(t, tr.TaskSegmentsIn(0, 100))
}

func TestEventsInWindow(t *testing.T) {
	tr := buildTestTrack()
	evs := tr.EventsIn(100, 300)
	require.Len(t, evs, 2)
	require.Equal(t, EvtWaitOneDone, evs[0].Kind)
	require.Equal(t, EvtPortQueue, evs[1].Kind)
}

func TestEventsInEmptyWindow(t *testing.T) {
	tr := buildTestTrack()
	evs := tr.EventsIn(1000, 2000)
	require.Empty(t, evs)
}

func TestFollowUnpairedReturnsFalse(t *testing.T) {
	tr := New(NopReporter{})
	e := &Event{EventIdx: 0}
	_, _, ok := tr.Follow(e)
	require.False(t, ok)
}

func TestFollowPairedDereferencesWriteEvent(t *testing.T) {
	tr := New(NopReporter{})
	writer := tr.newTrack("writer")
	writer.Event = append(writer.Event, Event{TS: 10, Kind: EvtMsgpipeWrite, A: 1})

	readEvt := &Event{TrackIdx: writer.Idx, EventIdx: 1}
	track, write, ok := tr.Follow(readEvt)
	require.True(t, ok)
	require.Same(t, writer, track)
	require.Equal(t, EvtMsgpipeWrite, write.Kind)
}

func TestTrackByIndexAndGroups(t *testing.T) {
	tr := New(NopReporter{})
	require.Len(t, tr.Groups(), 1) // the synthetic kernel group
	tt := tr.newTrack("x")
	require.Same(t, tt, tr.TrackByIndex(tt.Idx))
}
