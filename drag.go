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

package rotaryknob

// DragMode selects how pointer motion is turned into knob values.
type DragMode uint8

const (
	// DragLinear maps vertical pointer travel since the start of
	// the gesture to a change in value.  Up increases the value.
	DragLinear DragMode = iota
	// DragCircular sets the value directly from the pointer's
	// angle around the center of the knob.
	DragCircular
)

func (m DragMode) String() string {
	switch m {
	case DragLinear:
		return "linear"
	case DragCircular:
		return "circular"
	default:
		return "unknown"
	}
}

const (
	// MultiplierNormal is the fraction of the value range covered
	// by one pixel of vertical drag.
	MultiplierNormal = 0.01
	// MultiplierPrecise is used instead of MultiplierNormal while
	// SHIFT is held.
	MultiplierPrecise = 0.001
	// ValueGridSize is the grid values snap to while CTRL is held.
	ValueGridSize = 0.5
)

// DragSession holds the state of a single press-drag-release gesture.
// A new DragSession is created for every gesture and thrown away when
// the gesture ends.  It does no I/O; samples are fed in by the caller
// in widget-local coordinates.
type DragSession struct {
	mode        DragMode
	min, max    float64
	scale       Scale
	cx, cy      float64
	anchorValue float64
	anchorY     int
	lastX       int
	lastY       int
	value       float64
	active      bool
}

// NewDragSession starts a gesture at the local pointer position (x,
// y) with the knob currently at value.  (cx, cy) is the knob's center,
// used by DragCircular.
func NewDragSession(mode DragMode, value, min, max float64, scale Scale, cx, cy float64, x, y int) *DragSession {
	return &DragSession{
		mode:        mode,
		min:         min,
		max:         max,
		scale:       scale,
		cx:          cx,
		cy:          cy,
		anchorValue: value,
		anchorY:     y,
		lastX:       x,
		lastY:       y,
		value:       value,
		active:      true,
	}
}

// Mode returns the drag mode fixed at the start of the gesture.
func (s *DragSession) Mode() DragMode {
	return s.mode
}

// Value returns the most recent value produced by the gesture.
func (s *DragSession) Value() float64 {
	return s.value
}

// Active reports whether the gesture is still running.
func (s *DragSession) Active() bool {
	return s.active
}

// Cancel ends the gesture without further updates.
func (s *DragSession) Cancel() {
	s.active = false
}

// Sample feeds one pointer sample into the gesture.  It returns the
// current value, whether that value changed with this sample, and
// whether the gesture is still active.  A released button ends the
// gesture; a sample at the same position as the previous one is
// ignored.
func (s *DragSession) Sample(x, y int, pressed bool, q Qualifier) (value float64, changed bool, active bool) {
	if !s.active {
		return s.value, false, false
	}
	if !pressed {
		s.active = false
		return s.value, false, false
	}
	if x == s.lastX && y == s.lastY {
		return s.value, false, true
	}
	s.lastX = x
	s.lastY = y

	var v float64
	switch s.mode {
	case DragCircular:
		var ok bool
		v, ok = s.scale.ValueAt(float64(x)-s.cx, float64(y)-s.cy, s.min, s.max)
		if !ok {
			return s.value, false, true
		}
	default:
		multiplier := MultiplierNormal
		if q.Has(QualShift) {
			multiplier = MultiplierPrecise
		}
		totalDelta := float64(s.anchorY - y)
		v = s.anchorValue + totalDelta*(s.max-s.min)*multiplier
	}

	if q.Has(QualCtrl) {
		v = SnapToGrid(v, ValueGridSize)
	}
	v = Clamp(v, s.min, s.max)

	if v == s.value {
		return s.value, false, true
	}
	s.value = v
	return v, true, true
}
