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
	"log/slog"
	"sync"
	"time"

	"github.com/scottlaird/rotaryknob"
)

const (
	// A second touch within doubleClickInterval and
	// doubleClickDistance pixels of where the previous one ended is
	// a double-click.
	doubleClickInterval = 400 * time.Millisecond
	doubleClickDistance = 20

	sampleBuffer = 64
)

// PointerHost turns touches on a Region into the pointer events and
// samples a rotaryknob.Knob needs, making the device a rotaryknob.Host.
//
// Presses are delivered on the Presses channel.  The UI goroutine
// reads them and hands them to Knob.HandlePress, which then pulls
// samples with NextSample until the touch ends.  Two buttons on the
// device can be held down to act as the SHIFT and CTRL qualifiers.
type PointerHost struct {
	region  *Region
	presses chan rotaryknob.PointerEvent
	samples chan rotaryknob.PointerSample
	now     func() time.Time

	mu       sync.Mutex
	quals    rotaryknob.Qualifier
	pressed  bool
	captured bool
	closed   bool
	lastX    int
	lastY    int
	upAt     time.Time
	upX      int
	upY      int
	double   bool // the current touch began as a double-click
}

// NewPointerHost creates a PointerHost for touches on r and binds it
// to the surface.  Holding shift or ctrl sets the matching qualifier.
// The host's channels are closed when Listen returns.
func (s *Surface) NewPointerHost(r *Region, shift, ctrl Button) *PointerHost {
	h := newPointerHost(r)
	s.BindTouch(r.display.TouchScreen(), h.handleTouch)
	s.BindButton(shift, h.qualifierFunc(rotaryknob.QualShift))
	s.BindButtonUp(shift, h.qualifierFunc(rotaryknob.QualShift))
	s.BindButton(ctrl, h.qualifierFunc(rotaryknob.QualCtrl))
	s.BindButtonUp(ctrl, h.qualifierFunc(rotaryknob.QualCtrl))
	s.onClose(h.close)
	return h
}

func newPointerHost(r *Region) *PointerHost {
	return &PointerHost{
		region:  r,
		presses: make(chan rotaryknob.PointerEvent, 1),
		samples: make(chan rotaryknob.PointerSample, sampleBuffer),
		now:     time.Now,
	}
}

// Presses returns the channel that touch presses are delivered on.
func (h *PointerHost) Presses() <-chan rotaryknob.PointerEvent {
	return h.presses
}

// ToLocal translates touch screen coordinates into coordinates
// relative to the host's Region.
func (h *PointerHost) ToLocal(x, y int) (int, int) {
	ox, oy := h.region.Origin()
	return x - ox, y - oy
}

// BeginDrag starts forwarding touch samples.  Samples left over from
// earlier touches are discarded.  If the touch already ended, a
// release sample is queued so the drag finishes straight away.
func (h *PointerHost) BeginDrag(x, y int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.captured = true
	for len(h.samples) > 0 {
		<-h.samples
	}
	if !h.pressed {
		h.queue(rotaryknob.PointerSample{X: h.lastX, Y: h.lastY, Pressed: false, Qualifiers: h.quals})
	}
}

// NextSample blocks until the next touch sample.  It returns false
// once the surface has stopped listening.
func (h *PointerHost) NextSample() (rotaryknob.PointerSample, bool) {
	s, ok := <-h.samples
	return s, ok
}

// EndDrag stops forwarding touch samples.
func (h *PointerHost) EndDrag() {
	h.mu.Lock()
	h.captured = false
	h.mu.Unlock()
}

// queue adds a sample without blocking.  Must be called with h.mu held.
func (h *PointerHost) queue(s rotaryknob.PointerSample) {
	select {
	case h.samples <- s:
	default:
		slog.Warn("Dropping touch sample, knob is not keeping up", "x", s.X, "y", s.Y)
	}
}

// handleTouch is bound to the surface's touch screen.
func (h *PointerHost) handleTouch(status ButtonStatus, ux, uy uint16) {
	x, y := int(ux), int(uy)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.lastX, h.lastY = x, y

	switch {
	case status == ButtonDown && !h.pressed:
		h.pressed = true
		h.double = h.isDoubleClick(x, y)
		ev := rotaryknob.PointerEvent{
			X:           x,
			Y:           y,
			Button:      rotaryknob.PointerPrimary,
			DoubleClick: h.double,
			Qualifiers:  h.quals,
		}
		select {
		case h.presses <- ev:
		default:
			slog.Warn("Dropping touch press, previous press not handled yet", "x", x, "y", y)
		}

	case status == ButtonDown:
		if h.captured {
			h.queue(rotaryknob.PointerSample{X: x, Y: y, Pressed: true, Qualifiers: h.quals})
		}

	case status == ButtonUp:
		h.pressed = false
		if h.double {
			// A third tap starts over.
			h.upAt = time.Time{}
		} else {
			h.upAt = h.now()
			h.upX, h.upY = x, y
		}
		if h.captured {
			h.queue(rotaryknob.PointerSample{X: x, Y: y, Pressed: false, Qualifiers: h.quals})
		}
	}
}

// isDoubleClick decides whether a touch starting at (x, y) follows
// closely on the previous one.  Must be called with h.mu held.
func (h *PointerHost) isDoubleClick(x, y int) bool {
	if h.upAt.IsZero() || h.now().Sub(h.upAt) > doubleClickInterval {
		return false
	}
	if abs(x-h.upX) > doubleClickDistance || abs(y-h.upY) > doubleClickDistance {
		return false
	}
	return true
}

// qualifierFunc returns a ButtonFunc that tracks a qualifier button.
func (h *PointerHost) qualifierFunc(q rotaryknob.Qualifier) ButtonFunc {
	return func(_ Button, status ButtonStatus) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if status == ButtonDown {
			h.quals |= q
		} else {
			h.quals &^= q
		}
	}
}

// close ends any drag in progress and stops delivering events.
func (h *PointerHost) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.presses)
	close(h.samples)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
