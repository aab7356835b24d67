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

// Button represents a physical button on the device.  This includes
// the buttons at the bottom of the device as well as the 'click'
// function of the dials.
type Button uint16

const (
	// DialPress1 is sent when the first dial (upper left) is clicked.
	DialPress1 Button = 1
	// DialPress2 is sent when the second dial (middle left) is clicked.
	DialPress2 Button = 2
	// DialPress3 is sent when the third dial (bottom left) is clicked.
	DialPress3 Button = 3
	// DialPress4 is sent when the fourth dial (upper right) is clicked.
	DialPress4 Button = 4
	// DialPress5 is sent when the fifth dial (middle right) is clicked.
	DialPress5 Button = 5
	// DialPress6 is sent when the sixth dial (bottom right) is clicked.
	DialPress6 Button = 6
	// Circle is the left-most hardware button under the display.
	// This has a circle icon on the Loupedeck Live, but is labeled
	// "1" on the Loupedeck CT.
	Circle Button = 7
	Button1 Button = 8
	Button2 Button = 9
	Button3 Button = 10
	Button4 Button = 11
	Button5 Button = 12
	Button6 Button = 13
	Button7 Button = 14
)

// ButtonStatus represents the state of Buttons and touches.
type ButtonStatus uint8

const (
	// ButtonDown indicates that a button has just been pressed,
	// or that a touch started or moved.
	ButtonDown ButtonStatus = 0
	// ButtonUp indicates that a button was just released.
	ButtonUp ButtonStatus = 1
)

// ButtonFunc is called with the button that changed and its new state.
type ButtonFunc func(Button, ButtonStatus)

// Dial represents the rotating dials on the device.
type Dial uint16

const (
	// CTDial is the big dial with a display on the Loupedeck CT.
	CTDial Dial = 0
	Dial1  Dial = 1
	Dial2  Dial = 2
	Dial3  Dial = 3
	Dial4  Dial = 4
	Dial5  Dial = 5
	Dial6  Dial = 6
)

// DialFunc is called when a dial turns, with the number of detents
// it moved: positive for clockwise, negative for anticlockwise.
type DialFunc func(Dial, int)

// TouchScreen identifies a touch-sensitive area of the device.
type TouchScreen uint8

const (
	// TouchMain covers the left, main, and right displays.
	// Coordinates span all three.
	TouchMain TouchScreen = iota
	// TouchDial is the display in the middle of the CT's big dial.
	TouchDial
)

// TouchFunc is called for touch events.  ButtonDown is reported when
// a touch starts and every time it moves; ButtonUp when it ends.  x
// and y are relative to the whole touch screen.
type TouchFunc func(status ButtonStatus, x, y uint16)

// BindButton sets the callback for presses of a specific button.
func (s *Surface) BindButton(b Button, f ButtonFunc) {
	s.buttonBindings[b] = f
}

// BindButtonUp sets the callback for releases of a specific button.
func (s *Surface) BindButtonUp(b Button, f ButtonFunc) {
	s.buttonUpBindings[b] = f
}

// BindDial sets the callback for rotation of a specific dial.
func (s *Surface) BindDial(d Dial, f DialFunc) {
	s.dialBindings[d] = f
}

// BindTouch sets the callback for touches on a touch screen.  Only one
// callback per screen can be bound; binding again replaces it.
func (s *Surface) BindTouch(t TouchScreen, f TouchFunc) {
	s.touchBindings[t] = f
}
