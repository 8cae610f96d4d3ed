// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc59xx

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Variant describes the geometry of one chip in the chain: how many PWM
// channels it drives and how wide each grayscale word is. The values are
// stored on the Dev rather than baked into a type, which costs two ints per
// driver and lets one code path serve every chip in the family.
type Variant struct {
	Name     string
	Channels int
	WordBits int
	// Freq is the SCLK rate used when connecting through NewSPI. It is the
	// maximum the chip is rated for; lower it for long wires.
	Freq physic.Frequency
}

// TLC5947 is the 24-channel, 12-bit member of the family.
var TLC5947 = Variant{Name: "TLC5947", Channels: 24, WordBits: 12, Freq: 15 * physic.MegaHertz}

// TLC59711 is the 12-channel, 16-bit member of the family.
var TLC59711 = Variant{Name: "TLC59711", Channels: 12, WordBits: 16, Freq: 10 * physic.MegaHertz}

// MaxPWM returns the largest duty cycle value a channel word can hold.
func (v Variant) MaxPWM() uint16 {
	return uint16(1<<v.WordBits - 1)
}

// Dev is a handle to a chain of TLC59xx chips sharing one bus and one latch
// line. It owns both for its whole lifetime.
//
// Dev is not safe for concurrent use. The chips have no notion of partial
// updates, so interleaved SetPWM/Write calls from multiple goroutines would
// corrupt the image anyway; callers that need sharing must serialize around
// the whole Dev.
type Dev struct {
	c     spi.Conn
	lat   gpio.PinOut
	v     Variant
	chain int
	sr    *shiftRegister
}

// New returns a driver for chainSize daisy-chained chips of the given
// variant on an already configured SPI connection. The latch line is driven
// low, its idle state, and every channel starts at zero duty cycle; nothing
// is visible on the chips until the first Write.
func New(c spi.Conn, lat gpio.PinOut, v Variant, chainSize int) (*Dev, error) {
	if v.Channels <= 0 || v.WordBits <= 0 || v.WordBits > 16 {
		return nil, errors.New("tlc59xx: invalid device variant geometry")
	}
	if chainSize <= 0 {
		return nil, errors.New("tlc59xx: invalid value for number of chained devices")
	}
	if err := lat.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("tlc59xx: %v", err)
	}
	return &Dev{
		c:     c,
		lat:   lat,
		v:     v,
		chain: chainSize,
		sr:    newShiftRegister(chainSize * v.Channels * v.WordBits),
	}, nil
}

// NewSPI opens a connection on the given port at the variant's rated clock
// and returns a driver for the chain. The chips latch data on the rising
// clock edge with the latch low, which is Mode0.
func NewSPI(p spi.Port, lat gpio.PinOut, v Variant, chainSize int) (*Dev, error) {
	c, err := p.Connect(v.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("tlc59xx: %v", err)
	}
	return New(c, lat, v, chainSize)
}

// Channels returns the number of PWM channels across the whole chain.
func (d *Dev) Channels() int {
	return d.chain * d.v.Channels
}

// ChainSize returns the number of daisy-chained chips.
func (d *Dev) ChainSize() int {
	return d.chain
}

// Variant returns the geometry of the chips in the chain.
func (d *Dev) Variant() Variant {
	return d.v
}

// MaxPWM returns the largest duty cycle value the chain accepts, a shorthand
// for Variant().MaxPWM().
func (d *Dev) MaxPWM() uint16 {
	return d.v.MaxPWM()
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{chain: %d}", d.v.Name, d.chain)
}

// reg returns the shift register image and is the use-after-Release guard
// for every mutating or committing call.
func (d *Dev) reg() *shiftRegister {
	if d.sr == nil {
		panic("tlc59xx: driver used after Release")
	}
	return d.sr
}

// SetPWM stores the duty cycle for one channel in the shift register image.
// The chip sees nothing until the next Write; repeated calls simply
// overwrite, last one wins.
//
// Channels are numbered from the chip nearest the host: 0 is its OUT0, and
// numbering continues across chip boundaries down the chain.
//
// SetPWM panics if value does not fit in the variant's word or if channel is
// outside the chain. Both indicate a bug at the call site, and the image is
// left untouched.
func (d *Dev) SetPWM(channel int, value uint16) {
	sr := d.reg()
	if int(value) >= 1<<d.v.WordBits {
		panic(fmt.Sprintf("tlc59xx: PWM value %d does not fit in a %d-bit word", value, d.v.WordBits))
	}
	if channel < 0 || channel >= d.Channels() {
		panic(fmt.Sprintf("tlc59xx: channel %d out of range [0, %d)", channel, d.Channels()))
	}
	// The last bit shifted out travels furthest down the chain, so channel 0
	// occupies the tail of the image.
	end := sr.len() - channel*d.v.WordBits
	sr.storeWord(end-d.v.WordBits, d.v.WordBits, value)
}

// PWM returns the duty cycle currently stored for one channel. It reads the
// image, not the chip; the two differ until the next Write.
//
// PWM panics if channel is outside the chain.
func (d *Dev) PWM(channel int) uint16 {
	sr := d.reg()
	if channel < 0 || channel >= d.Channels() {
		panic(fmt.Sprintf("tlc59xx: channel %d out of range [0, %d)", channel, d.Channels()))
	}
	end := sr.len() - channel*d.v.WordBits
	return sr.loadWord(end-d.v.WordBits, d.v.WordBits)
}

// SetRGB stores an RGB triplet on three adjacent channels, treating the chain
// as a strip of RGB LEDs: light 0 is channels 0..2, light 1 is channels 3..5
// and so on. It is exactly three SetPWM calls and panics under the same
// conditions; a panic on the second or third call leaves the earlier
// components stored.
func (d *Dev) SetRGB(light int, r, g, b uint16) {
	base := light * 3
	d.SetPWM(base, r)
	d.SetPWM(base+1, g)
	d.SetPWM(base+2, b)
}

// Write clocks the whole shift register image out to the chain and pulses
// the latch to commit it to the chips' output registers.
//
// The transfer must complete before the pulse starts: the chips latch
// whatever has been shifted in at the moment of the rising edge. When the
// rising edge itself fails the falling edge is still attempted, so a
// partially transferred image is never left latched high.
//
// Write does not retry. The image is unchanged on failure, so calling Write
// again retries the identical commit.
func (d *Dev) Write() error {
	if err := d.c.Tx(d.reg().bytes(), nil); err != nil {
		return &BusWriteError{Err: err}
	}
	high := d.lat.Out(gpio.High)
	low := d.lat.Out(gpio.Low)
	if high != nil || low != nil {
		return &LatchError{High: high, Low: low}
	}
	return nil
}

// Halt blanks every channel and commits, turning all LEDs off. It implements
// conn.Resource. The Dev stays usable afterwards.
func (d *Dev) Halt() error {
	d.reg().clear()
	return d.Write()
}

// Release gives the bus and latch handles back to the caller and drops the
// image. The Dev must not be used afterwards; any further call panics with
// a "used after Release" message.
func (d *Dev) Release() (spi.Conn, gpio.PinOut) {
	c, lat := d.c, d.lat
	d.c = nil
	d.lat = nil
	d.sr = nil
	return c, lat
}
