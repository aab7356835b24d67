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

import "math"

// DefaultScaleLimit is the default half-sweep of a knob's scale, in
// degrees.  The full scale runs from -DefaultScaleLimit to
// +DefaultScaleLimit, leaving a gap at the bottom of the dial.
const DefaultScaleLimit = 135.0

// Scale describes the angular sweep that represents a knob's full
// value range.
//
// Angles are in radians.  0 is straight up and positive angles run
// clockwise on screen, where Y grows downwards.  A point at angle a
// and radius r is therefore at (sin(a)*r, -cos(a)*r) relative to the
// center of the knob.  Both the drawing code and the circular drag
// mode use this convention.
type Scale struct {
	StartRadians float64 // angle of the minimum value
	EndRadians   float64 // angle of the maximum value
}

// DefaultScale returns the -135..+135 degree scale.
func DefaultScale() Scale {
	return NewScale(-DefaultScaleLimit, DefaultScaleLimit)
}

// NewScale creates a Scale from start and end angles given in degrees.
func NewScale(startDegrees, endDegrees float64) Scale {
	return Scale{
		StartRadians: d2r(startDegrees),
		EndRadians:   d2r(endDegrees),
	}
}

// Angle returns the angle at which value should be drawn for a knob
// with the range [min, max].
func (s Scale) Angle(value, min, max float64) float64 {
	return MapRange(value, min, max, s.StartRadians, s.EndRadians)
}

// Offset returns the position of a point at the given angle and
// radius, relative to the knob's center.
func (s Scale) Offset(angle, radius float64) (float64, float64) {
	return math.Sin(angle) * radius, -math.Cos(angle) * radius
}

// AngleAt returns the angle of the point (dx, dy), given relative to
// the knob's center.  The result is in [-Pi, Pi]; points left of the
// center have negative angles.  The point at the center itself has no
// angle, and ok is false.
func (s Scale) AngleAt(dx, dy float64) (angle float64, ok bool) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, false
	}
	dx /= length
	dy /= length

	// Dot product with the "up" vector (0, -1) is simply -dy.
	dot := -dy
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	angle = math.Acos(dot)
	if dx < 0 {
		angle = -angle
	}
	return angle, true
}

// ValueAt converts the point (dx, dy), relative to the knob's center,
// into a value in [min, max].  Points beyond either end of the scale
// saturate at min or max rather than wrapping around.
func (s Scale) ValueAt(dx, dy, min, max float64) (float64, bool) {
	angle, ok := s.AngleAt(dx, dy)
	if !ok {
		return 0, false
	}
	v := MapRange(angle, s.StartRadians, s.EndRadians, min, max)
	return Clamp(v, min, max), true
}

// Ticks returns the angles of n+1 evenly spaced marks along the
// scale, from start to end inclusive.
func (s Scale) Ticks(n int) []float64 {
	if n < 1 {
		return []float64{s.StartRadians}
	}
	ticks := make([]float64, n+1)
	for i := range ticks {
		ticks[i] = MapRange(float64(i), 0, float64(n), s.StartRadians, s.EndRadians)
	}
	return ticks
}

// Degrees returns the start and end of the scale in degrees.
func (s Scale) Degrees() (float64, float64) {
	return r2d(s.StartRadians), r2d(s.EndRadians)
}
