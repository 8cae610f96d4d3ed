// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Chase animation for a chain of TLC5947 boards. With -term the frames are
// mirrored to the terminal, with -snapshot a PNG of the final frame is
// written, so the demo also runs without any hardware attached (-nodev).
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/tlc59xx"
	"github.com/GermanBionicSystems/tlc59xx/ledterm"
	"github.com/GermanBionicSystems/tlc59xx/preview"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/host/v3"
)

func main() {
	spiName := flag.String("spi", "", "SPI port to use, empty for the first available")
	latName := flag.String("lat", "GPIO17", "GPIO pin wired to the latch")
	chain := flag.Int("chain", 1, "number of daisy-chained TLC5947 boards")
	frames := flag.Int("frames", 96, "number of animation frames")
	term := flag.Bool("term", false, "mirror each frame to the terminal")
	snapshot := flag.String("snapshot", "", "write a PNG of the final frame to this file")
	nodev := flag.Bool("nodev", false, "run against a recording fake instead of real hardware")
	flag.Parse()

	dev, cleanup, err := open(*spiName, *latName, *chain, *nodev)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()
	defer dev.Halt()

	var strip *ledterm.Dev
	if *term {
		strip = ledterm.New(&ledterm.Opts{
			Lights:   (dev.Channels() + 2) / 3,
			WordBits: dev.Variant().WordBits,
		})
		defer strip.Halt()
	}

	lights := dev.Channels() / 3
	max := dev.MaxPWM()
	for f := 0; f < *frames; f++ {
		for i := 0; i < lights; i++ {
			// One bright dot runs down the strip with a dimming tail.
			dist := (i - f%lights + lights) % lights
			v := uint16(0)
			if dist < 4 {
				v = max >> uint(2*dist)
			}
			dev.SetRGB(i, v, v/4, max-v)
		}
		if err := dev.Write(); err != nil {
			log.Fatal(err)
		}
		if strip != nil {
			if err := strip.Mirror(dev); err != nil {
				log.Fatal(err)
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	if *snapshot != "" {
		f, err := os.Create(*snapshot)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, preview.Render(dev, &preview.Opts{Labels: true})); err != nil {
			log.Fatal(err)
		}
	}
}

// open connects to the chain, either on real hardware or on a recording
// fake, and returns the driver plus a port cleanup.
func open(spiName, latName string, chain int, nodev bool) (*tlc59xx.Dev, func(), error) {
	if nodev {
		record := &spitest.Record{}
		c, err := record.Connect(tlc59xx.TLC5947.Freq, spi.Mode0, 8)
		if err != nil {
			return nil, nil, err
		}
		dev, err := tlc59xx.New(c, &gpiotest.Pin{N: "LAT"}, tlc59xx.TLC5947, chain)
		if err != nil {
			return nil, nil, err
		}
		return dev, func() {}, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, nil, err
	}
	lat := gpioreg.ByName(latName)
	if lat == nil {
		p.Close()
		return nil, nil, fmt.Errorf("latch pin %q not found", latName)
	}
	dev, err := tlc59xx.NewSPI(p, lat, tlc59xx.TLC5947, chain)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return dev, func() { p.Close() }, nil
}
