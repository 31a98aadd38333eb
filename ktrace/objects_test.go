// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFnv1aBucketInRange(t *testing.T) {
	for _, id := range []uint32{0, 1, 0xdeadbeef, 0xffffffff, 0x10, 0x20} {
		b := fnv1aBucket(id)
		require.Less(t, b, uint32(registryBuckets))
	}
}

func TestFnv1aBucketDeterministic(t *testing.T) {
	require.Equal(t, fnv1aBucket(0x1234), fnv1aBucket(0x1234))
}

func TestRegistryFindAbsent(t *testing.T) {
	r := NewRegistry(NopReporter{})
	o, mismatched := r.find(1, KindThread, 0)
	require.Nil(t, o)
	require.False(t, mismatched)
}

func TestRegistryAddThenFind(t *testing.T) {
	r := NewRegistry(NopReporter{})
	added := r.add(&Object{ID: 5, Kind: KindThread}, 0)
	require.NotNil(t, added)

	o, mismatched := r.find(5, KindThread, 0)
	require.False(t, mismatched)
	require.Same(t, added, o)
}

func TestRegistryKindMismatchReports(t *testing.T) {
	rep := &CountingReporter{}
	r := NewRegistry(rep)
	r.add(&Object{ID: 5, Kind: KindProcess}, 0)

	o, mismatched := r.find(5, KindThread, 100)
	require.Nil(t, o)
	require.True(t, mismatched)
	require.Equal(t, 1, rep.Counts[KindMismatch])
}

func TestRegistryDoubleAddReportsAndKeepsFirst(t *testing.T) {
	rep := &CountingReporter{}
	r := NewRegistry(rep)
	first := r.add(&Object{ID: 9, Kind: KindThread}, 0)
	second := r.add(&Object{ID: 9, Kind: KindThread}, 10)

	require.Same(t, first, second)
	require.Equal(t, 1, rep.Counts[DoubleResolve])
}

func TestRegistryForEachVisitsAll(t *testing.T) {
	r := NewRegistry(NopReporter{})
	ids := []uint32{1, 2, 3, 1025, 2049} // spread across buckets, including collisions mod 1024
	for _, id := range ids {
		r.add(&Object{ID: id, Kind: KindThread}, 0)
	}
	seen := map[uint32]bool{}
	r.forEach(func(o *Object) { seen[o.ID] = true })
	require.Len(t, seen, len(ids))
	for _, id := range ids {
		require.True(t, seen[id])
	}
}

func TestObjectResolvedFlag(t *testing.T) {
	o := &Object{}
	require.False(t, o.Resolved())
	o.Flags |= ObjResolved
	require.True(t, o.Resolved())
}
