// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrorKind classifies a diagnostic raised during ingestion. A FormatError
// or IOError returned by the Reader is fatal; every diagnostic surfaced to
// the Reporter (including the FormatErrors Dispatch reports) is not, and
// ingestion continues, per the policy table in the reader's design notes.
type ErrorKind int

const (
	// FormatError indicates the byte stream itself cannot be parsed
	// (a record's declared length is inconsistent, or the stream ends
	// mid-record). Ingestion stops at the offending record. Dispatch
	// also reports it to the Reporter, without stopping, for an unknown
	// event kind or a probe record with an unexpected body length.
	FormatError ErrorKind = iota

	// KindMismatch indicates an id was looked up expecting one object
	// kind but already names an object of a different kind. The lookup
	// fails (returns nil) and the dependent operation is skipped;
	// ingestion continues.
	KindMismatch

	// DoubleResolve indicates an object transitioned from unresolved to
	// resolved more than once (e.g. two PROC_CREATE records for the same
	// pid). The first resolution wins; ingestion continues.
	DoubleResolve

	// DanglingReference indicates an operation referenced an object that
	// was never resolved (e.g. a write on a msgpipe endpoint whose
	// sibling was never created). The dependent feature (here, flow
	// pairing) is skipped; the record's own event is still recorded.
	DanglingReference

	// IOError indicates the underlying byte source failed for reasons
	// other than malformed content (a read error from the file system).
	// This aborts ingestion with a non-zero exit.
	IOError
)

func (k ErrorKind) String() string {
	switch k {
	case FormatError:
		return "FormatError"
	case KindMismatch:
		return "KindMismatch"
	case DoubleResolve:
		return "DoubleResolve"
	case DanglingReference:
		return "DanglingReference"
	case IOError:
		return "IOError"
	}
	return "ErrorKind(?)"
}

// TraceError is returned by Reader and Trace for fatal conditions
// (FormatError, IOError). Non-fatal diagnostics go through Reporter
// instead and never surface as a Go error.
type TraceError struct {
	Kind   ErrorKind
	Offset int64
	Err    error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *TraceError) Unwrap() error { return e.Err }

func wrapIOError(offset int64, op string, err error) *TraceError {
	return &TraceError{Kind: IOError, Offset: offset, Err: errors.Wrap(err, op)}
}

func wrapFormatError(offset int64, op string, err error) *TraceError {
	return &TraceError{Kind: FormatError, Offset: offset, Err: errors.Wrap(err, op)}
}

// Reporter receives the non-fatal diagnostics described by ErrorKind. It is
// the surfaced-error channel mandated in place of the original importer's
// forced-crash-on-mismatch behavior.
type Reporter interface {
	Report(kind ErrorKind, offset int64, format string, args ...interface{})
}

// LogrusReporter adapts a logrus logger to Reporter, the way
// cmd/containerd-nydus-grpc wires structured fields onto every error it
// surfaces instead of printing a bare string.
type LogrusReporter struct {
	Log logrus.FieldLogger
}

// NewLogrusReporter returns a Reporter backed by the given logger, or by
// logrus's default standard logger if log is nil.
func NewLogrusReporter(log logrus.FieldLogger) *LogrusReporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogrusReporter{Log: log}
}

func (r *LogrusReporter) Report(kind ErrorKind, offset int64, format string, args ...interface{}) {
	r.Log.WithFields(logrus.Fields{
		"kind":   kind.String(),
		"offset": offset,
	}).Errorf(format, args...)
}

// NopReporter discards every report. Useful for callers that only care
// about the resulting model, not the diagnostic stream.
type NopReporter struct{}

func (NopReporter) Report(ErrorKind, int64, string, ...interface{}) {}

// CountingReporter tallies reports by kind and records each formatted
// message. It exists mainly to make the testable properties in
// the design notes assertable without parsing log output.
type CountingReporter struct {
	Counts   map[ErrorKind]int
	Messages []string
}

func (c *CountingReporter) Report(kind ErrorKind, offset int64, format string, args ...interface{}) {
	if c.Counts == nil {
		c.Counts = make(map[ErrorKind]int)
	}
	c.Counts[kind]++
	c.Messages = append(c.Messages, fmt.Sprintf("%s@%d: %s", kind, offset, fmt.Sprintf(format, args...)))
}
