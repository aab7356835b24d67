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

// MapRange maps value from the range [inMin, inMax] onto the range
// [outMin, outMax].  Values outside the input range are extrapolated,
// not clamped.  If the input range is empty (inMin == inMax) then
// outMin is returned.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax-inMin == 0 {
		return outMin
	}
	return outMin + (outMax-outMin)*((value-inMin)/(inMax-inMin))
}

// SnapToGrid rounds value to the nearest multiple of grid, with
// halfway values rounding up.  A grid of 0 collapses everything onto
// the origin and returns 0.
func SnapToGrid(value, grid float64) float64 {
	if grid == 0 {
		return 0
	}
	return math.Floor(value/grid+0.5) * grid
}

// Clamp limits v to [min, max].  The lower bound is checked first, so
// a malformed range with min > max always yields min.  NaN yields min.
func Clamp(v, min, max float64) float64 {
	if v < min || math.IsNaN(v) {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func d2r(d float64) float64 {
	return d * math.Pi / 180
}

func r2d(r float64) float64 {
	return r * 180 / math.Pi
}
