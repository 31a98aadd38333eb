// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

//go:generate bitstringer -type=ObjFlags -strip=Obj

// ObjFlags records per-object bookkeeping bits.
type ObjFlags uint32

const (
	// ObjResolved is set the first time an object transitions from
	// implicitly-created (referenced before its *_CREATE record) to
	// properly resolved. It is set at most once per object; a second
	// *_CREATE for the same id is a DoubleResolve.
	ObjResolved ObjFlags = 1 << 0

	// ObjDeleted is set when an OBJECT_DELETE record names this object.
	// The object stays in the registry (a later record may still
	// reference its id for diagnostic purposes) but is marked retired.
	ObjDeleted ObjFlags = 1 << 1
)

// MessageDescriptor identifies a MSGPIPE_WRITE event by the track it lives
// on and its 1-based position within that track's Event slice. A zero
// EventIdx means "no event" - the zero value of MessageDescriptor is
// therefore a valid "unpaired" marker, which is why pairing uses 1-based
// indices instead of the natural 0-based slice index.
type MessageDescriptor struct {
	TrackIdx uint16
	EventIdx uint32
}

// Object is the single tagged-variant type backing all four kinds the
// registry tracks. Only a couple of fields are meaningful per kind: Group
// for a Process, Track for a Thread, Other/PendingWrites for a MsgPipe.
// Using one struct instead of four separate types keeps find/add/forEach
// generic, the way perfsession.Session keeps one PIDInfo map rather than
// parallel per-attribute maps.
type Object struct {
	ID      uint32
	Kind    Kind
	Flags   ObjFlags
	Creator uint32

	Group *Group // valid when Kind == KindProcess
	Track *Track // valid when Kind == KindThread

	Other         *Object             // valid when Kind == KindMsgPipe
	PendingWrites []MessageDescriptor // valid when Kind == KindMsgPipe

	next *Object // bucket chain
}

// Resolved reports whether obj has completed its one-time creation
// transition (the *_CREATE record for it has been seen and accepted).
func (o *Object) Resolved() bool { return o.Flags&ObjResolved != 0 }

// registryBuckets is the bucket count for the object hash table: 1024
// buckets keyed by a tiny FNV-1a hash of the 32-bit id, matching the
// kernel producer's own in-memory table so the two agree on load factor
// for traces of the sizes this format is meant for.
const registryBuckets = 1024
const registryBucketBits = 10 // log2(registryBuckets)

// fnv1aBucket hashes id into [0, registryBuckets) using the same tiny
// FNV-1a plus xor-fold technique the kernel-side table uses, byte by byte
// over the little-endian id.
func fnv1aBucket(id uint32) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619

	h := uint32(offset32)
	n := id
	for i := 0; i < 4; i++ {
		h = (h ^ (n & 0xff)) * prime32
		n >>= 8
	}
	return ((h >> registryBucketBits) ^ h) & (registryBuckets - 1)
}

// Registry is the typed object table described by C3: every Process,
// Thread, MsgPipe, and Port shares one id space and one hash table, with
// kind carried alongside the id so a lookup can detect a kind mismatch
// rather than silently returning the wrong sort of object.
type Registry struct {
	buckets  [registryBuckets]*Object
	reporter Reporter
}

// NewRegistry creates an empty registry that reports diagnostics to rep.
func NewRegistry(rep Reporter) *Registry {
	return &Registry{reporter: rep}
}

// findAny looks up id regardless of kind, or returns nil if absent.
func (r *Registry) findAny(id uint32) *Object {
	for o := r.buckets[fnv1aBucket(id)]; o != nil; o = o.next {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// find looks up id expecting the given kind. If an object exists under a
// different kind, it reports KindMismatch and returns (nil, true): the
// caller must not create a substitute object, since the id is already
// spoken for. If nothing exists at all, it returns (nil, false): it is
// safe for the caller to create and add a new object.
func (r *Registry) find(id uint32, kind Kind, offset int64) (obj *Object, mismatched bool) {
	o := r.findAny(id)
	if o == nil {
		return nil, false
	}
	if o.Kind != kind {
		r.reporter.Report(KindMismatch, offset, "object %#x is %s, not %s", id, o.Kind, kind)
		return nil, true
	}
	return o, false
}

// add inserts obj, which the caller has already confirmed (via find) is
// absent. It still re-checks defensively, reporting DoubleResolve or
// KindMismatch and returning the pre-existing object rather than
// corrupting the bucket chain with a second entry for the same id.
func (r *Registry) add(obj *Object, offset int64) *Object {
	if existing := r.findAny(obj.ID); existing != nil {
		if existing.Kind == obj.Kind {
			r.reporter.Report(DoubleResolve, offset, "object %#x (%s) already registered", obj.ID, obj.Kind)
		} else {
			r.reporter.Report(KindMismatch, offset, "object %#x is %s, not %s", obj.ID, existing.Kind, obj.Kind)
		}
		return existing
	}
	b := fnv1aBucket(obj.ID)
	obj.next = r.buckets[b]
	r.buckets[b] = obj
	return obj
}

// forEach visits every object in the registry, in bucket order. Order is
// not meaningful; finalize.go's use of it (a terminal sample on each thread
// track) does not depend on order.
func (r *Registry) forEach(f func(*Object)) {
	for _, head := range r.buckets {
		for o := head; o != nil; o = o.next {
			f(o)
		}
	}
}
