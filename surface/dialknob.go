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

	"github.com/scottlaird/rotaryknob"
)

// Runner runs f on whichever goroutine owns the knob.  Knobs aren't
// safe for concurrent use, so a program that drags knobs on one
// goroutine should pass a Runner that hands f over to it.  A nil
// Runner calls f directly from the listener.
type Runner func(f func())

// DialKnob turns left/right dial actions into nudging a
// rotaryknob.Knob by its Step, and the 'click' action of the dial into
// resetting the knob to a fixed value.
type DialKnob struct {
	dial  Dial
	knob  *rotaryknob.Knob
	reset float64
	run   Runner
}

// BindDialKnob binds dial d to k.  Spin the dial and the knob
// changes, click it and the knob goes back to reset (clamped to the
// knob's range).  The CT's big dial has no click.
func (s *Surface) BindDialKnob(d Dial, k *rotaryknob.Knob, reset float64, run Runner) *DialKnob {
	dk := &DialKnob{
		dial:  d,
		knob:  k,
		reset: reset,
		run:   run,
	}
	if dk.run == nil {
		dk.run = func(f func()) { f() }
	}

	s.BindDial(d, func(_ Dial, v int) {
		dk.run(func() { dk.Turn(v) })
	})
	if d != CTDial {
		s.BindButton(Button(d), func(_ Button, st ButtonStatus) {
			if st == ButtonDown {
				dk.run(dk.Reset)
			}
		})
	}
	return dk
}

// Knob returns the knob the dial is bound to.
func (dk *DialKnob) Knob() *rotaryknob.Knob {
	return dk.knob
}

// Turn nudges the knob by v steps.
func (dk *DialKnob) Turn(v int) {
	dk.knob.Nudge(v)
	slog.Debug("Dial turned", "dial", dk.dial, "detents", v, "value", dk.knob.Get())
}

// Reset sets the knob back to its reset value.
func (dk *DialKnob) Reset() {
	dk.knob.Set(dk.reset, false)
}
