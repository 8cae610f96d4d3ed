// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledterm emulates a chain of RGB LEDs in the terminal using ANSI
// color codes.
//
// Useful while you are waiting for your TLC5947 board to come by mail: point
// it at the driver and every commit shows up as a row of colored blocks on
// stdout. When stdout is not a terminal the frame is printed as hex triplets
// instead.
package ledterm

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/GermanBionicSystems/tlc59xx"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this display.
type Opts struct {
	// Lights is the number of RGB triplets to show.
	Lights int
	// WordBits is the grayscale word width of the values fed to Write.
	// Defaults to 16.
	WordBits int
	// Palette picks the ANSI palette. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Writer overrides the output. Defaults to a colorable stdout.
	Writer io.Writer
	// Plain forces the hex fallback even on a terminal.
	Plain bool

	_ struct{}
}

// Dev is a chain-of-RGB-LEDs emulator that outputs to the console.
type Dev struct {
	w        io.Writer
	lights   int
	wordBits int
	palette  ansi256.Palette
	color    bool

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	wordBits := opts.WordBits
	if wordBits == 0 {
		wordBits = 16
	}
	d := &Dev{
		lights:   opts.Lights,
		wordBits: wordBits,
		palette:  *p,
		pixels:   make([]byte, 3*opts.Lights),
	}
	if opts.Writer != nil {
		d.w = opts.Writer
		d.color = !opts.Plain
	} else {
		d.w = colorable.NewColorableStdout()
		d.color = !opts.Plain && isatty.IsTerminal(os.Stdout.Fd())
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("LEDTerm{%d}", d.lights)
}

// Halt implements conn.Resource.
//
// It terminates the current line and resets the terminal colors.
func (d *Dev) Halt() error {
	if !d.color {
		return nil
	}
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts one frame of grayscale words, three per light, and redraws
// the strip. Values are truncated to 8 bits per color for display.
func (d *Dev) Write(channels []uint16) error {
	if len(channels) != 3*d.lights {
		return errors.New("ledterm: invalid frame length")
	}
	for i, v := range channels {
		d.pixels[i] = d.scale(v)
	}
	return d.refresh()
}

// Mirror redraws the strip from the driver's current shift register image,
// one block per RGB triplet. Chains whose channel count is not a multiple of
// three show the remainder as partial triplets padded with zero.
func (d *Dev) Mirror(dev *tlc59xx.Dev) error {
	for i := range d.pixels {
		if i < dev.Channels() {
			d.pixels[i] = d.scale(dev.PWM(i))
		} else {
			d.pixels[i] = 0
		}
	}
	return d.refresh()
}

// scale truncates one grayscale word to the 8 bits the terminal can show.
func (d *Dev) scale(v uint16) byte {
	if d.wordBits >= 8 {
		return byte(v >> (d.wordBits - 8))
	}
	return byte(v << (8 - d.wordBits))
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	if !d.color {
		for i := 0; i < len(d.pixels)/3; i++ {
			fmt.Fprintf(&d.buf, "%02x%02x%02x ", d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2])
		}
		d.buf.WriteByte('\n')
		_, err := d.buf.WriteTo(d.w)
		return err
	}
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < len(d.pixels)/3; i++ {
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
