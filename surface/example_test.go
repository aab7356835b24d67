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

package surface_test

import (
	"fmt"

	"github.com/scottlaird/rotaryknob"
	"github.com/scottlaird/rotaryknob/surface"
)

func Example() {
	s, err := surface.ConnectAuto()
	if err != nil {
		panic(err)
	}
	s.SetDisplays()

	gain := rotaryknob.NewWatchedFloat(0)
	gain.AddWatcher(func(v float64, inProgress bool) { fmt.Printf("gain -> %.2f\n", v) })

	knob := rotaryknob.NewKnob(rotaryknob.Properties{Name: "Gain", Min: 0, Max: 10, Size: 120}, gain)
	if err := knob.Init(); err != nil {
		panic(err)
	}

	region := s.GetDisplay("main").At(120, 0)
	knob.Attach(region)
	host := s.NewPointerHost(region, surface.Circle, surface.Button1)

	// The big dial nudges the knob one step per detent.
	s.BindDial(surface.CTDial, func(d surface.Dial, v int) { knob.Nudge(v) })

	go s.Listen()
	for ev := range host.Presses() {
		knob.HandlePress(ev, host)
	}
}
