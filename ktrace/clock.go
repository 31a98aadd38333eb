// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// Clock converts the raw tick counter carried by every record's timestamp
// field into nanoseconds, once a TICKS_PER_MS record has calibrated it.
// Before calibration every conversion yields 0, matching records observed
// ahead of the calibration record in the stream (the kernel producer always
// emits TICKS_PER_MS first, but nothing in the format guarantees it).
type Clock struct {
	ticksPerMs uint64
	calibrated bool
}

// SetTicksPerMs calibrates the clock. A zero value leaves the clock
// uncalibrated, matching the sentinel the kernel producer uses before it
// has measured its own tick rate.
func (c *Clock) SetTicksPerMs(n uint64) {
	c.ticksPerMs = n
	c.calibrated = n != 0
}

// Calibrated reports whether a nonzero TICKS_PER_MS has been observed.
func (c *Clock) Calibrated() bool { return c.calibrated }

// ToNanos converts a raw tick count to nanoseconds, or 0 if the clock has
// not yet been calibrated.
func (c *Clock) ToNanos(ticks uint64) int64 {
	if !c.calibrated {
		return 0
	}
	return int64((ticks * 1_000_000) / c.ticksPerMs)
}
