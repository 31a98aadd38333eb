// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import "encoding/binary"

// buildRecord assembles the wire bytes for one record: a 16-byte header
// derived from kind/tid/ts plus body, with the tag's length field computed
// from the resulting total size.
func buildRecord(kind EventKind, tid uint32, ts uint64, body []byte) []byte {
	total := headerSize + len(body)
	tag := uint32(kind) | uint32(total)<<16
	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:4], tag)
	binary.LittleEndian.PutUint32(buf[4:8], tid)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(ts))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(ts>>32))
	copy(buf[16:], body)
	return buf
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func fourU32Body(a, b, c, d uint32) []byte {
	out := append([]byte{}, u32le(a)...)
	out = append(out, u32le(b)...)
	out = append(out, u32le(c)...)
	out = append(out, u32le(d)...)
	return out
}

const testNameSize = 24

func nameBody(id, arg uint32, name string) []byte {
	out := append([]byte{}, u32le(id)...)
	out = append(out, u32le(arg)...)
	nb := make([]byte, testNameSize)
	copy(nb, name)
	return append(out, nb...)
}

// contextSwitchBody packs a CONTEXT_SWITCH record's 4x32 payload: newtid,
// (state<<16|cpu), oldkaddr, newkaddr.
func contextSwitchBody(newtid uint32, state TaskState, cpu uint8, oldk, newk uint32) []byte {
	stateCPU := uint32(state)<<16 | uint32(cpu)
	return fourU32Body(newtid, stateCPU, oldk, newk)
}

func concat(recs ...[]byte) []byte {
	var out []byte
	for _, r := range recs {
		out = append(out, r...)
	}
	return out
}
