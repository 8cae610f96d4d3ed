// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tlc59xx controls Texas Instruments TLC59xx constant-current LED
// drivers over SPI. Two chips from the family are supported out of the box:
//
//   - TLC5947: 24 channels, 12-bit grayscale
//   - TLC59711: 12 channels, 16-bit grayscale
//
// Any number of chips can be daisy-chained on a single bus; the driver keeps
// one shift register image spanning the whole chain and clocks it out in a
// single transfer, then pulses the latch line to commit the new duty cycles.
//
// The driver only needs an spi.Conn for the data/clock pair and a gpio.PinOut
// for the latch, so it runs on anything periph.io/x/host supports.
//
// # Datasheets
//
// https://www.ti.com/lit/ds/symlink/tlc5947.pdf
//
// https://www.ti.com/lit/ds/symlink/tlc59711.pdf
package tlc59xx
