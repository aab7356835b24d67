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
	"testing"

	"github.com/scottlaird/rotaryknob"
)

func TestDialKnob(t *testing.T) {
	s := newSurface(nil, nil)
	k := rotaryknob.NewKnob(rotaryknob.Properties{Min: 0, Max: 10, Step: 0.5}, rotaryknob.NewWatchedFloat(5))
	s.BindDialKnob(Dial2, k, 2, nil)

	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(Dial2), 0x03}})
	if got := k.Get(); got != 6.5 {
		t.Errorf("expected 6.5 after three detents, got %v", got)
	}
	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(Dial2), 0xf6}})
	if got := k.Get(); got != 1.5 {
		t.Errorf("expected 1.5 after ten detents back, got %v", got)
	}
	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(Dial2), 0xf6}})
	if got := k.Get(); got != 0 {
		t.Errorf("expected the knob to stop at 0, got %v", got)
	}

	s.dispatch(&Message{messageType: ButtonPress, data: []byte{byte(DialPress2), byte(ButtonDown)}})
	if got := k.Get(); got != 2 {
		t.Errorf("expected a click to reset to 2, got %v", got)
	}
	s.dispatch(&Message{messageType: ButtonPress, data: []byte{byte(DialPress2), byte(ButtonUp)}})
	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(Dial3), 0x01}})
	if got := k.Get(); got != 2 {
		t.Errorf("expected other events to leave the knob alone, got %v", got)
	}
}

func TestDialKnob_Runner(t *testing.T) {
	s := newSurface(nil, nil)
	k := rotaryknob.NewKnob(rotaryknob.Properties{Min: 0, Max: 10, Step: 1}, rotaryknob.NewWatchedFloat(5))

	var pending []func()
	dk := s.BindDialKnob(CTDial, k, 0, func(f func()) { pending = append(pending, f) })
	if dk.Knob() != k {
		t.Errorf("expected DialKnob to return its knob")
	}

	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(CTDial), 0x02}})
	if got := k.Get(); got != 5 {
		t.Errorf("expected the turn to wait for the runner, got %v", got)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending action, got %d", len(pending))
	}
	pending[0]()
	if got := k.Get(); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
	if s.buttonBindings[Button(CTDial)] != nil {
		t.Errorf("expected no click binding for the big dial")
	}
}
