// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc59xx

// shiftRegister is the packed image of every grayscale bit in the chain.
//
// Bit index i lives in byte i/8 at position 7-i%8, so bit 0 is the MSB of
// byte 0. The slice is handed to the bus verbatim and the bus clocks each
// byte out MSB first, so bit i is also the i-th bit on the wire.
//
// The buffer is sized once at construction and never grows.
type shiftRegister struct {
	bits []byte
	n    int
}

func newShiftRegister(n int) *shiftRegister {
	return &shiftRegister{bits: make([]byte, (n+7)/8), n: n}
}

// len returns the register length in bits.
func (sr *shiftRegister) len() int {
	return sr.n
}

func (sr *shiftRegister) set(i int, b bool) {
	if b {
		sr.bits[i/8] |= 1 << (7 - i%8)
	} else {
		sr.bits[i/8] &^= 1 << (7 - i%8)
	}
}

func (sr *shiftRegister) get(i int) bool {
	return sr.bits[i/8]&(1<<(7-i%8)) != 0
}

// storeWord writes the width low bits of val into [start, start+width), least
// significant bit at the lowest index. Any previous content of the range is
// overwritten.
func (sr *shiftRegister) storeWord(start, width int, val uint16) {
	for j := 0; j < width; j++ {
		sr.set(start+j, val&(1<<j) != 0)
	}
}

// loadWord is the inverse of storeWord.
func (sr *shiftRegister) loadWord(start, width int) uint16 {
	var val uint16
	for j := 0; j < width; j++ {
		if sr.get(start + j) {
			val |= 1 << j
		}
	}
	return val
}

// clear zeroes the whole register.
func (sr *shiftRegister) clear() {
	for i := range sr.bits {
		sr.bits[i] = 0
	}
}

// bytes exposes the packed register for the bus write. The caller must not
// keep the slice across mutations.
func (sr *shiftRegister) bytes() []byte {
	return sr.bits
}
