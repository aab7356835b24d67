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

import (
	"log/slog"
	"strconv"
)

const (
	// AreaWidth is the default width and height of the knob area, in pixels.
	AreaWidth = 100
	// AreaMargin is the space between the knob and the edge of its area.
	AreaMargin = 10
	// Oversampling is the factor the knob is drawn at before being
	// scaled down to its final size.  Bigger is prettier and slower.
	Oversampling = 2
)

// PopupFunc is called when the user double-clicks the knob to ask for
// a numeric entry popup.  It receives the knob's current value.
type PopupFunc func(value float64)

// Knob is a rotary knob control for a single bounded float64
// parameter.  Dragging the pointer over the knob changes the value,
// either linearly (drag up/down) or circularly (point at the value),
// and every change is mirrored into the knob's WatchedFloat.
//
// A Knob is not safe for concurrent use; it expects to be driven from
// a single UI goroutine.
type Knob struct {
	props    Properties
	scale    Scale
	value    *WatchedFloat
	popup    PopupFunc
	canvas   Canvas
	renderer *Renderer
	dragging bool
}

// NewKnob creates a Knob bound to value.  The value is clamped into
// the range given by props straight away.
func NewKnob(props Properties, value *WatchedFloat) *Knob {
	if value == nil {
		value = NewWatchedFloat(props.Min)
	}
	k := &Knob{
		value: value,
	}
	k.SetProperties(props)
	return k
}

// Init prepares the knob's renderer.  Calling it is optional; Draw
// will create the renderer on first use.
func (k *Knob) Init() error {
	if k.renderer != nil {
		return nil
	}
	r, err := NewRenderer()
	if err != nil {
		return err
	}
	k.renderer = r
	return nil
}

// Properties returns the knob's configuration.
func (k *Knob) Properties() Properties {
	return k.props
}

// SetProperties replaces the knob's configuration.  Missing scale
// limits and sizes are filled in with defaults, and the current value
// is clamped into the new range.
func (k *Knob) SetProperties(props Properties) {
	k.props = props.withDefaults()
	k.scale = NewScale(-k.props.ScaleLimit, k.props.ScaleLimit)
	cur := k.value.Get()
	if v := Clamp(cur, k.props.Min, k.props.Max); v != cur {
		k.value.Set(v, k.value.Tristate())
	}
}

// Scale returns the angular scale the knob draws and drags with.
func (k *Knob) Scale() Scale {
	return k.scale
}

// Get returns the current value of the Knob.
func (k *Knob) Get() float64 {
	return k.value.Get()
}

// Tristate reports whether the knob currently shows an indeterminate value.
func (k *Knob) Tristate() bool {
	return k.value.Tristate()
}

// Set sets the current value and tristate flag of the Knob, clamped to
// its range, triggering the callbacks of the underlying WatchedFloat
// once.
func (k *Knob) Set(v float64, tristate bool) {
	k.value.Set(Clamp(v, k.props.Min, k.props.Max), tristate)
}

// Nudge moves the value by steps increments of the knob's Step
// property, as a hardware dial would.  Knobs without a Step move by a
// hundredth of their range.
func (k *Knob) Nudge(steps int) {
	step := k.props.Step
	if step == 0 {
		step = (k.props.Max - k.props.Min) * MultiplierNormal
	}
	k.Set(k.Get()+float64(steps)*step, false)
}

// AddWatcher adds a callback that is called whenever the knob's value
// changes.
func (k *Knob) AddWatcher(f WatchFunc) {
	k.value.AddWatcher(f)
}

// BindPopup sets the callback for double-clicks.  Only one callback
// can be bound at a time; binding again replaces the previous one.
func (k *Knob) BindPopup(f PopupFunc) {
	k.popup = f
}

// Dragging reports whether a drag gesture is in progress.
func (k *Knob) Dragging() bool {
	return k.dragging
}

// MinSize returns the smallest area the knob can be drawn into,
// including its name label and value field.
func (k *Knob) MinSize() (int, int) {
	w := k.props.Size
	h := w
	if !k.props.HideName {
		h += LabelHeight
	}
	if !k.props.HideValue && !k.props.ValueInKnob {
		h += LabelHeight
	}
	return w, h
}

// knobOffset is the Y offset of the dial inside the widget, making
// room for the name label.
func (k *Knob) knobOffset() int {
	if k.props.HideName {
		return 0
	}
	return LabelHeight
}

// Center returns the center of the dial in widget-local coordinates.
func (k *Knob) Center() (float64, float64) {
	half := float64(k.props.Size) / 2
	return half, half + float64(k.knobOffset())
}

// Tooltip returns the bubble help shown while hovering over the knob.
// It matches the value readout, including "---" when indeterminate.
func (k *Knob) Tooltip() string {
	if k.Tristate() {
		return tristateReadout
	}
	return FormatValue(k.Get())
}

// FormatValue formats a knob value for display.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// contains reports whether the local point (x, y) lies on the knob.
func (k *Knob) contains(x, y int) bool {
	w, h := k.MinSize()
	return x >= 0 && y >= 0 && x < w && y < h
}

// HandlePress handles a pointer press.  It returns false if the press
// was not for the knob (wrong button, or outside its area).
//
// A double-click calls the popup callback and nothing else.  Any
// other press starts a drag, and HandlePress doesn't return until the
// drag is over: it keeps asking host for pointer samples, updating
// the value and calling watchers (with inProgress set) after every
// sample that changes the value.
func (k *Knob) HandlePress(ev PointerEvent, host Host) bool {
	if ev.Button != PointerPrimary {
		return false
	}
	x, y := host.ToLocal(ev.X, ev.Y)
	if !k.contains(x, y) {
		return false
	}

	if ev.DoubleClick {
		slog.Debug("Knob double-clicked, requesting value popup", "knob", k.props.Name)
		if k.popup != nil {
			k.popup(k.Get())
		}
		return true
	}

	mode := DragLinear
	if k.props.CircularMouse {
		mode = DragCircular
	}
	cx, cy := k.Center()
	s := NewDragSession(mode, k.Get(), k.props.Min, k.props.Max, k.scale, cx, cy, x, y)
	slog.Debug("Starting knob drag", "knob", k.props.Name, "mode", mode, "x", x, "y", y, "value", k.Get())

	k.dragging = true
	host.BeginDrag(x, y)
	defer func() {
		host.EndDrag()
		k.dragging = false
	}()

	for {
		sample, ok := host.NextSample()
		if !ok {
			slog.Debug("Knob drag cancelled", "knob", k.props.Name)
			s.Cancel()
			break
		}
		lx, ly := host.ToLocal(sample.X, sample.Y)
		v, changed, active := s.Sample(lx, ly, sample.Pressed, sample.Qualifiers)
		if !active {
			break
		}
		if changed {
			k.value.update(v)
		}
	}
	slog.Debug("Knob drag done", "knob", k.props.Name, "value", k.Get())
	return true
}

// Attach makes the knob redraw itself onto c, at (0, 0), whenever its
// value changes.
func (k *Knob) Attach(c Canvas) {
	first := k.canvas == nil
	k.canvas = c
	if first {
		k.value.AddWatcher(func(float64, bool) {
			k.Redraw()
		})
	}
	k.Redraw()
}

// Redraw draws the knob onto its attached Canvas, if any.  A frame
// that can't be rendered is skipped; the next redraw tries again.
func (k *Knob) Redraw() {
	if k.canvas == nil {
		return
	}
	if err := k.Draw(k.canvas); err != nil {
		slog.Debug("Skipping knob frame", "knob", k.props.Name, "err", err)
	}
}

// Draw renders the knob and draws it onto dst at (0, 0).
func (k *Knob) Draw(dst Canvas) error {
	if err := k.Init(); err != nil {
		return err
	}
	im, err := k.renderer.Render(k)
	if err != nil {
		return err
	}
	dst.Draw(im, 0, 0)
	return nil
}
