// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// evtMsgpipeCreate resolves both endpoints of a pipe, cross-links them via
// Other, and emits a CREATE event on the creating thread's track. If either
// id is already in use under a different kind (KindMismatch was already
// reported by the failed lookup), neither endpoint is resolved and no
// CREATE event is emitted.
func (tr *Trace) evtMsgpipeCreate(offset, ns int64, creator *Object, id, otherID uint32) {
	p0 := tr.findOrCreateMsgPipe(id, offset)
	p1 := tr.findOrCreateMsgPipe(otherID, offset)
	if p0 == nil || p1 == nil {
		return
	}

	if p0.Resolved() {
		tr.reporter.Report(DoubleResolve, offset, "msgpipe %#x already created", id)
	} else {
		p0.Flags |= ObjResolved
		p0.Creator = creator.ID
		p0.Other = p1
	}
	if p1.Resolved() {
		tr.reporter.Report(DoubleResolve, offset, "msgpipe %#x already created", otherID)
	} else {
		p1.Flags |= ObjResolved
		p1.Creator = creator.ID
		p1.Other = p0
	}

	tr.stats.MsgpipeCreate++
	e := tr.trackAddEvent(creator.Track, ns, EvtMsgpipeCreate)
	e.A, e.B = id, otherID
}

// evtMsgpipeWrite records a write on endpoint id and, if the endpoint has a
// resolved sibling, enqueues a MessageDescriptor naming this write event
// onto the *sibling's* pending-writes queue - not the written endpoint's
// own queue - since it is the sibling's next read that will consume it.
//
// If the sibling's queue is already non-empty, this write is deliberately
// left unpaired rather than appended: a second write arriving before the
// first has been read through is dropped from pairing, matching the
// kernel-side producer's own behavior rather than smoothing it over. The
// write event itself is still recorded either way.
func (tr *Trace) evtMsgpipeWrite(offset, ns int64, writer *Object, id, bytes, handles uint32) {
	pipe := tr.findOrCreateMsgPipe(id, offset)
	if pipe == nil {
		return
	}

	tr.stats.MsgpipeWrite++
	e := tr.trackAddEvent(writer.Track, ns, EvtMsgpipeWrite)
	e.A, e.B, e.C = id, bytes, handles

	if pipe.Other == nil {
		tr.reporter.Report(DanglingReference, offset, "msgpipe %#x has no resolved sibling; write not paired", id)
		return
	}
	sibling := pipe.Other
	if len(sibling.PendingWrites) > 0 {
		return
	}
	eventIdx := uint32(len(writer.Track.Event)) // 1-based: this event's 0-based index plus one
	sibling.PendingWrites = append(sibling.PendingWrites, MessageDescriptor{
		TrackIdx: writer.Track.Idx,
		EventIdx: eventIdx,
	})
}

// evtMsgpipeRead records a read on endpoint id and, if a write is queued
// for it, pairs the two by copying the writer's (track, event) reference
// onto the read event. An unpaired read keeps EventIdx at its zero value.
func (tr *Trace) evtMsgpipeRead(offset, ns int64, reader *Object, id, bytes, handles uint32) {
	pipe := tr.findOrCreateMsgPipe(id, offset)
	if pipe == nil {
		return
	}

	tr.stats.MsgpipeRead++
	e := tr.trackAddEvent(reader.Track, ns, EvtMsgpipeRead)
	e.A, e.B, e.C = id, bytes, handles

	if len(pipe.PendingWrites) == 0 {
		return
	}
	d := pipe.PendingWrites[0]
	pipe.PendingWrites = pipe.PendingWrites[1:]
	e.TrackIdx, e.EventIdx = d.TrackIdx, d.EventIdx
}
