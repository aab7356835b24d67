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

package surface

import (
	"encoding/binary"
	"image"
	"log/slog"

	"maze.io/x/pixel/pixelcolor"
)

// Display is one of the device's screens.
type Display struct {
	surface          *Surface
	id               byte
	width, height    int
	offsetx, offsety int // where the display sits in its touch screen's coordinates
	touch            TouchScreen
	Name             string
	bigEndian        bool
}

// GetDisplay returns the Display with a given name, or nil.
//
// Traditional devices had 3 displays, left, main, and right.  Newer
// devices make all 3 look like a single display, and the Loupedeck CT
// adds the dial display, so displays are created at runtime and
// looked up by name:
//
//   - left, main, right (on all devices, emulated on newer hardware)
//   - all (newer hardware only)
//   - dial (Loupedeck CT only)
func (s *Surface) GetDisplay(name string) *Display {
	return s.displays[name]
}

func (s *Surface) addDisplay(name string, id byte, width, height, offsetx, offsety int, touch TouchScreen, bigEndian bool) {
	s.displays[name] = &Display{
		surface:   s,
		Name:      name,
		id:        id,
		width:     width,
		height:    height,
		offsetx:   offsetx,
		offsety:   offsety,
		touch:     touch,
		bigEndian: bigEndian,
	}
}

// SetDisplays creates the standard set of displays.
func (s *Surface) SetDisplays() {
	s.addDisplay("left", 'L', 60, 270, 0, 0, TouchMain, false)
	s.addDisplay("main", 'A', 360, 270, 60, 0, TouchMain, false)
	s.addDisplay("right", 'R', 60, 270, 420, 0, TouchMain, false)
	s.addDisplay("all", 'M', 480, 270, 0, 0, TouchMain, false)
	s.addDisplay("dial", 'W', 240, 240, 0, 0, TouchDial, true)
}

// Height returns the height of the display in pixels.
func (d *Display) Height() int {
	return d.height
}

// Width returns the width of the display in pixels.
func (d *Display) Width() int {
	return d.width
}

// TouchScreen returns the touch screen that covers this display.
func (d *Display) TouchScreen() TouchScreen {
	return d.touch
}

// Draw draws an image onto the display at (xoff, yoff).  Drawing
// subsets of a display is explicitly allowed; only the pixels covered
// by im are overwritten.
//
// Pixels are sent as RGB565, little-endian except on the CT's dial
// display.
func (d *Display) Draw(im image.Image, xoff, yoff int) {
	slog.Debug("Draw called", "display", d.Name, "xoff", xoff, "yoff", yoff, "width", im.Bounds().Dx(), "height", im.Bounds().Dy())

	m := d.surface.NewMessage(WriteFramebuff, d.framebuffer(im, xoff, yoff))
	if err := d.surface.Send(m); err != nil {
		slog.Warn("Unable to write framebuffer", "display", d.Name, "err", err)
		return
	}

	// The screen isn't actually updated until 'Draw' arrives.
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(d.id))
	if err := d.surface.Send(d.surface.NewMessage(Draw, data)); err != nil {
		slog.Warn("Unable to refresh display", "display", d.Name, "err", err)
	}
}

// framebuffer encodes im as a WriteFramebuff payload.
func (d *Display) framebuffer(im image.Image, xoff, yoff int) []byte {
	b := im.Bounds()
	data := make([]byte, 10, 10+2*b.Dx()*b.Dy())
	binary.BigEndian.PutUint16(data[0:], uint16(d.id))
	binary.BigEndian.PutUint16(data[2:], uint16(xoff))
	binary.BigEndian.PutUint16(data[4:], uint16(yoff))
	binary.BigEndian.PutUint16(data[6:], uint16(b.Dx()))
	binary.BigEndian.PutUint16(data[8:], uint16(b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixel := pixelcolor.ToRGB565(im.At(x, y))
			lowByte := byte(pixel & 0xff)
			highByte := byte(pixel >> 8)

			if d.bigEndian {
				data = append(data, highByte, lowByte)
			} else {
				data = append(data, lowByte, highByte)
			}
		}
	}
	return data
}

// Region is a window onto a Display: images drawn
// into it are offset by the region's origin.  Knobs draw themselves
// at (0, 0), so a Region is how one is placed on a display.
type Region struct {
	display *Display
	x, y    int
}

// At returns a Region of d with its origin at (x, y).
func (d *Display) At(x, y int) *Region {
	return &Region{display: d, x: x, y: y}
}

// Draw draws im into the region.
func (r *Region) Draw(im image.Image, xoff, yoff int) {
	r.display.Draw(im, r.x+xoff, r.y+yoff)
}

// Origin returns the region's origin in touch screen coordinates.
func (r *Region) Origin() (int, int) {
	return r.display.offsetx + r.x, r.display.offsety + r.y
}
