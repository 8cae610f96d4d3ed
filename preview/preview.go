// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview renders a snapshot of a TLC59xx chain to an image, one
// disc per RGB triplet. The primary use case is the development of light
// animations on a host machine: render a frame, write it to a PNG, look at
// it, no hardware required.
package preview

import (
	"image"
	"strconv"

	"github.com/GermanBionicSystems/tlc59xx"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Opts represents the rendering options.
type Opts struct {
	// CellSize is the square size in pixels given to each LED. Defaults
	// to 48.
	CellSize int
	// Labels draws the first channel index of each triplet under its disc.
	Labels bool

	_ struct{}
}

// Render draws the driver's current shift register image as a horizontal
// strip of discs, one per RGB triplet, in chain order. Channels left over by
// a chain whose channel count is not a multiple of three are treated as an
// incomplete triplet padded with zero.
//
// The colors show what the chips would display after the next Write, not
// what was last committed.
func Render(dev *tlc59xx.Dev, opts *Opts) image.Image {
	if opts == nil {
		opts = &Opts{}
	}
	cell := opts.CellSize
	if cell <= 0 {
		cell = 48
	}
	lights := (dev.Channels() + 2) / 3
	height := cell
	if opts.Labels {
		height += 16
	}

	dc := gg.NewContext(lights*cell, height)
	dc.SetRGB(0.12, 0.12, 0.12)
	dc.Clear()

	max := float64(dev.MaxPWM())
	for i := 0; i < lights; i++ {
		r, g, b := triplet(dev, 3*i)
		x := float64(i*cell) + float64(cell)/2
		y := float64(cell) / 2
		dc.SetRGB(float64(r)/max, float64(g)/max, float64(b)/max)
		dc.DrawCircle(x, y, float64(cell)*0.4)
		dc.Fill()
		if opts.Labels {
			dc.SetFontFace(basicfont.Face7x13)
			dc.SetRGB(0.9, 0.9, 0.9)
			dc.DrawStringAnchored(strconv.Itoa(3*i), x, float64(cell)+7, 0.5, 0.5)
		}
	}
	return dc.Image()
}

func triplet(dev *tlc59xx.Dev, base int) (uint16, uint16, uint16) {
	var v [3]uint16
	for j := 0; j < 3; j++ {
		if base+j < dev.Channels() {
			v[j] = dev.PWM(base + j)
		}
	}
	return v[0], v[1], v[2]
}
