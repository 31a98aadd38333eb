// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"bufio"
	"encoding/binary"
	"io"
)

// headerSize is the fixed size, in bytes, of every record's header: a
// uint32 tag, a uint32 tid, and a uint64 timestamp in raw ticks.
const headerSize = 16

// Tag is the raw uint32 tag field of a record header. Its low 16 bits name
// the event kind; bits 16..23 carry the record's total length in bytes
// (header included), fixed by the kernel producer.
type Tag uint32

// Kind extracts the event kind from a tag.
func (t Tag) Kind() EventKind { return EventKind(t & 0xffff) }

// TotalLen extracts the record's total length (header + body) from a tag.
func (t Tag) TotalLen() int { return int((t >> 16) & 0xff) }

// Record is one decoded record from a trace stream: the fixed header plus
// the raw, not-yet-interpreted body bytes. Dispatch interprets Body
// according to Kind.
type Record struct {
	Offset  int64 // byte offset of this record's header in the stream
	Tag     Tag
	Kind    EventKind
	Tid     uint32
	TSTicks uint64
	Body    []byte
}

// Reader streams Records out of a byte source one at a time. It stops
// cleanly (Next returns false, Err returns nil) on a genuine end of stream,
// on a zero tag (the producer's explicit terminator), or when an optional
// byte limit is reached; it stops with an error (Err returns a *TraceError
// of kind FormatError) on a record whose declared length is inconsistent
// with the format, or that is cut short by the stream ending mid-record;
// it stops with an IOError if the underlying read itself fails.
type Reader struct {
	br  *bufio.Reader
	buf []byte
	rec Record
	err error

	offset   int64
	consumed int64
	hasLimit bool
	limit    int64
}

// NewReader wraps r for sequential record decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// SetLimit bounds ingestion to units*32 bytes of the stream, matching the
// kernel producer's convention of sizing its own -limit flag in 32-byte
// units. A limit of 0 means stop before reading anything at all, producing
// an empty model.
func (r *Reader) SetLimit(units uint32) {
	r.hasLimit = true
	r.limit = int64(units) * 32
}

// Next decodes the next record, if any. It returns false at a clean end of
// stream (possibly because the limit was reached) or after a fatal error;
// callers should check Err to distinguish the two.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if r.hasLimit && r.consumed >= r.limit {
		return false
	}

	var hdr [headerSize]byte
	n, err := io.ReadFull(r.br, hdr[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return false
		}
		if err == io.ErrUnexpectedEOF {
			r.err = wrapFormatError(r.offset, "reading record header", err)
			return false
		}
		r.err = wrapIOError(r.offset, "reading record header", err)
		return false
	}

	offset := r.offset
	tag := Tag(binary.LittleEndian.Uint32(hdr[0:4]))
	tid := binary.LittleEndian.Uint32(hdr[4:8])
	tsLo := binary.LittleEndian.Uint32(hdr[8:12])
	tsHi := binary.LittleEndian.Uint32(hdr[12:16])
	r.offset += headerSize

	if tag == 0 {
		return false
	}

	total := tag.TotalLen()
	if total < headerSize {
		r.err = wrapFormatError(offset, "decoding record header", errRecordTooShort)
		return false
	}
	bodyLen := total - headerSize

	if cap(r.buf) < bodyLen {
		r.buf = make([]byte, bodyLen)
	}
	body := r.buf[:bodyLen]
	if bodyLen > 0 {
		if _, err := io.ReadFull(r.br, body); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				r.err = wrapFormatError(offset, "reading record body", err)
			} else {
				r.err = wrapIOError(offset, "reading record body", err)
			}
			return false
		}
	}
	r.offset += int64(bodyLen)
	r.consumed += int64(total)

	r.rec = Record{
		Offset:  offset,
		Tag:     tag,
		Kind:    tag.Kind(),
		Tid:     tid,
		TSTicks: uint64(tsLo) | uint64(tsHi)<<32,
		Body:    body,
	}
	return true
}

// Record returns the most recently decoded record. Its Body slice is only
// valid until the next call to Next.
func (r *Reader) Record() *Record { return &r.rec }

// Err returns the fatal error that stopped Next, if any.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

type recordTooShortError struct{}

func (recordTooShortError) Error() string { return "record length shorter than header" }

var errRecordTooShort = recordTooShortError{}
