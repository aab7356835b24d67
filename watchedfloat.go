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

// WatchFunc is used for callbacks for changes to a WatchedFloat.
// inProgress is true while a drag gesture is still running; the last
// in-progress value before the gesture ends is the final one.
type WatchFunc func(value float64, inProgress bool)

// WatchedFloat wraps a float64 parameter value (and its tristate
// flag) with zero or more callback watchers.  It stands in for the
// host-managed parameter slot that a Knob mirrors its value into;
// whenever the value changes, all of the callbacks are called.
type WatchedFloat struct {
	value     float64
	tristate  bool
	notifiers []WatchFunc
}

// NewWatchedFloat creates a new WatchedFloat with the specified initial value.
func NewWatchedFloat(value float64) *WatchedFloat {
	return &WatchedFloat{
		value:     value,
		notifiers: make([]WatchFunc, 0),
	}
}

// Get returns the current value of the WatchedFloat.
func (w *WatchedFloat) Get() float64 {
	return w.value
}

// Tristate reports whether the value is indeterminate, for instance
// because it stands for several host objects with differing values.
func (w *WatchedFloat) Tristate() bool {
	return w.tristate
}

// Set updates the value and tristate flag and calls all watchers
// with inProgress set to false.
func (w *WatchedFloat) Set(value float64, tristate bool) {
	w.value = value
	w.tristate = tristate
	w.notify(false)
}

// update stores a value produced mid-gesture.  Dragging always
// resolves the tristate.
func (w *WatchedFloat) update(value float64) {
	w.value = value
	w.tristate = false
	w.notify(true)
}

func (w *WatchedFloat) notify(inProgress bool) {
	for _, f := range w.notifiers {
		f(w.value, inProgress)
	}
}

// AddWatcher adds a callback function for this WatchedFloat.
func (w *WatchedFloat) AddWatcher(f WatchFunc) {
	w.notifiers = append(w.notifiers, f)
}
