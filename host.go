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

import "image"

// Host is the environment a Knob lives in.  It delivers pointer
// samples during a drag and translates coordinates into the knob's
// local space.  All calls happen on the goroutine that called
// Knob.HandlePress.
type Host interface {
	// ToLocal translates global coordinates into widget-local ones.
	ToLocal(x, y int) (int, int)

	// BeginDrag captures the pointer for a drag starting at the
	// given local coordinates.
	BeginDrag(x, y int)

	// NextSample blocks until the next pointer sample is
	// available.  It returns false if the drag was cancelled or
	// the pointer capture was lost.
	NextSample() (PointerSample, bool)

	// EndDrag releases the pointer capture.
	EndDrag()
}

// Canvas is something a rendered knob can be drawn onto, such as one
// of a control surface's displays.
type Canvas interface {
	Draw(im image.Image, xoff, yoff int)
}

// Widget is the set of capabilities a host needs from a custom
// control.  Knob implements it; the value mapping code underneath it
// does not depend on it.
type Widget interface {
	Init() error
	MinSize() (int, int)
	Draw(dst Canvas) error
	HandlePress(ev PointerEvent, host Host) bool
}
