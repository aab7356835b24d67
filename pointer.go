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

// Qualifier is a bitmask of modifier keys held while a pointer sample
// was taken.
type Qualifier uint8

const (
	// QualShift selects the precise (slow) drag multiplier.
	QualShift Qualifier = 1 << iota
	// QualCtrl snaps dragged values to the value grid.
	QualCtrl
	// QualAlt is reported by some hosts but not used by the knob.
	QualAlt
)

// Has reports whether all bits of f are set in q.
func (q Qualifier) Has(f Qualifier) bool {
	return q&f == f
}

// PointerButton identifies which pointer button was pressed.
type PointerButton uint8

const (
	// PointerPrimary is the left mouse button, or a touch.
	PointerPrimary PointerButton = 0
	// PointerSecondary is the right mouse button.
	PointerSecondary PointerButton = 1
	// PointerMiddle is the middle mouse button.
	PointerMiddle PointerButton = 2
)

// PointerEvent is a button press delivered by the host.  X and Y are
// in the host's global coordinate space.
type PointerEvent struct {
	X, Y        int
	Button      PointerButton
	DoubleClick bool
	Qualifiers  Qualifier
}

// PointerSample is one sample of the pointer state taken while a drag
// is in progress.  X and Y are in the host's global coordinate space.
type PointerSample struct {
	X, Y       int
	Pressed    bool
	Qualifiers Qualifier
}
