// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestThread(tr *Trace, id uint32) *Object {
	return tr.findOrCreateThread(id, 0)
}

func TestMsgpipeCreateLinksBothEndpoints(t *testing.T) {
	tr := New(NopReporter{})
	creator := newTestThread(tr, 1)

	tr.evtMsgpipeCreate(0, 100, creator, 10, 11)

	p0, _ := tr.objects.find(10, KindMsgPipe, 0)
	p1, _ := tr.objects.find(11, KindMsgPipe, 0)
	require.NotNil(t, p0)
	require.NotNil(t, p1)
	require.Same(t, p1, p0.Other)
	require.Same(t, p0, p1.Other)
	require.True(t, p0.Resolved())
	require.True(t, p1.Resolved())

	require.Len(t, creator.Track.Event, 1)
	require.Equal(t, EvtMsgpipeCreate, creator.Track.Event[0].Kind)
}

func TestWriteThenReadPairs(t *testing.T) {
	tr := New(NopReporter{})
	creator := newTestThread(tr, 1)
	writer := newTestThread(tr, 2)
	reader := newTestThread(tr, 3)

	tr.evtMsgpipeCreate(0, 0, creator, 10, 11)
	tr.evtMsgpipeWrite(0, 100, writer, 10, 64, 0)
	tr.evtMsgpipeRead(0, 200, reader, 11, 64, 0)

	require.Len(t, reader.Track.Event, 1)
	readEvt := reader.Track.Event[0]
	require.NotZero(t, readEvt.EventIdx)

	track, write, ok := tr.Follow(&readEvt)
	require.True(t, ok)
	require.Same(t, writer.Track, track)
	require.Equal(t, EvtMsgpipeWrite, write.Kind)
}

func TestReadWithoutPendingWriteIsUnpaired(t *testing.T) {
	tr := New(NopReporter{})
	creator := newTestThread(tr, 1)
	reader := newTestThread(tr, 3)

	tr.evtMsgpipeCreate(0, 0, creator, 10, 11)
	tr.evtMsgpipeRead(0, 200, reader, 11, 0, 0)

	require.Len(t, reader.Track.Event, 1)
	require.Zero(t, reader.Track.Event[0].EventIdx)
}

func TestSecondWriteBeforeReadIsDroppedFromPairingButStillRecorded(t *testing.T) {
	tr := New(NopReporter{})
	creator := newTestThread(tr, 1)
	writer := newTestThread(tr, 2)
	reader := newTestThread(tr, 3)

	tr.evtMsgpipeCreate(0, 0, creator, 10, 11)
	tr.evtMsgpipeWrite(0, 100, writer, 10, 1, 0)
	tr.evtMsgpipeWrite(0, 150, writer, 10, 2, 0) // dropped from pairing: sibling's queue still has the first

	require.Len(t, writer.Track.Event, 2) // both writes still recorded on the writer's own track

	tr.evtMsgpipeRead(0, 200, reader, 11, 0, 0)
	readEvt := reader.Track.Event[0]
	track, write, ok := tr.Follow(&readEvt)
	require.True(t, ok)
	require.Same(t, writer.Track, track)
	require.Equal(t, uint32(1), write.B) // paired with the first write, not the second
}

func TestWriteOnKindMismatchSkipsEventEntirely(t *testing.T) {
	rep := &CountingReporter{}
	tr := New(rep)
	writer := newTestThread(tr, 2)

	// id 10 is already a Process, not a MsgPipe.
	tr.objects.add(&Object{ID: 10, Kind: KindProcess}, 0)

	tr.evtMsgpipeWrite(0, 100, writer, 10, 1, 0)

	require.Empty(t, writer.Track.Event)
	require.Equal(t, 1, rep.Counts[KindMismatch])
}

func TestWriteWithUnresolvedSiblingReportsDanglingReferenceButKeepsEvent(t *testing.T) {
	rep := &CountingReporter{}
	tr := New(rep)
	writer := newTestThread(tr, 2)

	tr.evtMsgpipeWrite(0, 100, writer, 10, 1, 0) // pipe auto-created, no Other set

	require.Len(t, writer.Track.Event, 1)
	require.Equal(t, 1, rep.Counts[DanglingReference])
}
