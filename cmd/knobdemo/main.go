/*
   Copyright 2021 Google LLC

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       https://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// knobdemo shows the knobs from a YAML description on a Loupedeck
// Live or Razer Stream Controller.  Drag a knob up or down to change
// it, or drag around its center when it's configured as circular.
// Hold Circle for fine adjustment and Button1 to snap to half steps.
// Dials 1 to 6 adjust the knobs in order; the big dial on the CT
// adjusts whichever knob was touched last.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/scottlaird/rotaryknob"
	"github.com/scottlaird/rotaryknob/surface"
)

const labelHeight = rotaryknob.LabelHeight

// dials are bound, in order, to the first knobs.  A click resets the
// knob to its starting value.
var dials = []surface.Dial{surface.Dial1, surface.Dial2, surface.Dial3, surface.Dial4, surface.Dial5, surface.Dial6}

var (
	configFile = flag.String("config", "", "YAML knob description; a single demo knob is used when empty")
	serialPath = flag.String("serial", "", "Serial port of the device; autodetected when empty")
	logLevel   = flag.String("log-level", "info", "Log level: error, warn, info, or debug")
)

const demoDescription = `
knobs:
  - name: Gain
    min: 0
    max: 10
    step: 0.1
    value: 5
  - name: Pan
    min: -1
    max: 1
    step: 0.05
    circular: true
  - name: Mix
    min: 0
    max: 100
    step: 1
    scale_limit: 150
    value: 50
`

// slot is where a knob sits on the display.
type slot struct {
	x, y, size int
}

// layout spreads n knobs across a w by h display, each with room for
// its name and value labels.
func layout(n, w, h int) []slot {
	slots := make([]slot, n)
	if n == 0 {
		return slots
	}
	cell := w / n
	size := h - 2*labelHeight
	if cell < size {
		size = cell
	}
	for i := range slots {
		slots[i] = slot{
			x:    i*cell + (cell-size)/2,
			y:    (h - size - 2*labelHeight) / 2,
			size: size,
		}
	}
	return slots
}

// offsetHost shifts a Host's local coordinates so they're relative to
// one knob's slot rather than the whole display.
type offsetHost struct {
	rotaryknob.Host
	dx, dy int
}

func (h offsetHost) ToLocal(x, y int) (int, int) {
	x, y = h.Host.ToLocal(x, y)
	return x - h.dx, y - h.dy
}

func loadDescription() (*rotaryknob.Description, error) {
	if *configFile == "" {
		return rotaryknob.ParseDescription([]byte(demoDescription))
	}
	return rotaryknob.LoadDescription(*configFile)
}

func connect() (*surface.Surface, error) {
	if *serialPath != "" {
		return surface.ConnectPath(*serialPath)
	}
	return surface.ConnectAuto()
}

func main() {
	flag.Parse()

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(level)

	if err := run(); err != nil {
		slog.Error("knobdemo failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	desc, err := loadDescription()
	if err != nil {
		return err
	}
	if len(desc.Knobs) == 0 {
		return fmt.Errorf("no knobs described in %q", *configFile)
	}

	// The device doesn't always respond if the previous run didn't
	// shut down correctly.  Re-running fixes the problem.
	slog.Info("Trying to connect.  If this hangs, hit ctrl-C and re-run.")
	s, err := connect()
	if err != nil {
		return fmt.Errorf("unable to connect: %w", err)
	}
	defer s.Close()
	// Version and serial number arrive once Listen is running, and are
	// logged then.
	slog.Info("Connected", "vendor", s.Vendor, "product", s.Product)

	s.SetDisplays()
	display := s.GetDisplay("all")
	host := s.NewPointerHost(display.At(0, 0), surface.Circle, surface.Button1)

	knobs := desc.NewKnobs()
	slots := layout(len(knobs), display.Width(), display.Height())
	hosts := make([]rotaryknob.Host, len(knobs))
	for i, k := range knobs {
		sl := slots[i]
		props := k.Properties()
		props.Size = sl.size
		k.SetProperties(props)
		if err := k.Init(); err != nil {
			return fmt.Errorf("unable to set up knob %q: %w", props.Name, err)
		}

		name := props.Name
		k.AddWatcher(func(v float64, inProgress bool) {
			slog.Info("Knob changed", "knob", name, "value", v, "dragging", inProgress)
		})
		k.BindPopup(func(v float64) {
			slog.Info("Value entry requested", "knob", name, "value", v)
		})
		k.Attach(display.At(sl.x, sl.y))
		hosts[i] = offsetHost{Host: host, dx: sl.x, dy: sl.y}
	}

	if err := s.SetButtonColor(surface.Circle, color.RGBA{0, 0, 255, 255}); err != nil {
		slog.Warn("Unable to light button", "button", surface.Circle, "err", err)
	}
	if err := s.SetButtonColor(surface.Button1, color.RGBA{0, 255, 0, 255}); err != nil {
		slog.Warn("Unable to light button", "button", surface.Button1, "err", err)
	}

	// Knobs are only touched from this goroutine; dial actions are
	// handed over rather than applied from the listener.
	work := make(chan func(), 16)
	run := func(f func()) {
		select {
		case work <- f:
		default:
			slog.Warn("Dropping dial action, knobs are busy")
		}
	}
	for i, k := range knobs {
		if i < len(dials) {
			s.BindDialKnob(dials[i], k, k.Get(), run)
		}
	}

	focus := knobs[0]
	s.BindDial(surface.CTDial, func(_ surface.Dial, v int) {
		run(func() { focus.Nudge(v) })
	})

	done := make(chan error, 1)
	go func() { done <- s.Listen() }()

	presses := host.Presses()
	for {
		select {
		case ev, ok := <-presses:
			if !ok {
				return <-done
			}
			for i, k := range knobs {
				if k.HandlePress(ev, hosts[i]) {
					focus = k
					break
				}
			}
		case f := <-work:
			f()
		}
	}
}
