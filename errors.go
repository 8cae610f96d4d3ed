// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc59xx

// BusWriteError reports a failed transfer of the shift register image. The
// image itself is untouched, so the caller may simply retry Write.
type BusWriteError struct {
	Err error
}

func (e *BusWriteError) Error() string {
	return "tlc59xx: shift register write failed: " + e.Err.Error()
}

func (e *BusWriteError) Unwrap() error {
	return e.Err
}

// LatchError reports a failed latch transition after the image was
// transferred. High holds the error from the rising edge, Low the one from
// the falling edge; at least one of them is set. When High is set the chip
// outputs may already show the new image.
type LatchError struct {
	High error
	Low  error
}

func (e *LatchError) Error() string {
	s := "tlc59xx: latch pulse failed"
	if e.High != nil {
		s += ": high: " + e.High.Error()
	}
	if e.Low != nil {
		s += ": low: " + e.Low.Error()
	}
	return s
}

func (e *LatchError) Unwrap() error {
	if e.High != nil {
		return e.High
	}
	return e.Low
}
