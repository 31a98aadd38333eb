// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import "encoding/binary"

// bufDecoder decodes the fixed-shape payloads a record body can carry (four
// little-endian uint32s, or an id/arg pair followed by a padded name) in the
// same incremental style as perffile's bufDecoder: each
// method consumes from the front of buf and advances it, so a handler reads
// a payload by chaining calls in wire order.
type bufDecoder struct {
	buf []byte
}

func newBufDecoder(buf []byte) *bufDecoder {
	return &bufDecoder{buf: buf}
}

// remaining reports how many bytes are left to decode.
func (d *bufDecoder) remaining() int { return len(d.buf) }

func (d *bufDecoder) u32() uint32 {
	if len(d.buf) < 4 {
		d.buf = nil
		return 0
	}
	v := binary.LittleEndian.Uint32(d.buf)
	d.buf = d.buf[4:]
	return v
}

func (d *bufDecoder) u64() uint64 {
	return uint64(d.u32()) | uint64(d.u32())<<32
}

// name consumes the rest of the buffer as a NUL-padded string, trimming at
// the first NUL byte (or using the full remaining width if there isn't
// one).
func (d *bufDecoder) name() string {
	b := d.buf
	d.buf = nil
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
