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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Properties configures a Knob.  They mirror the description of the
// host parameter the knob is attached to.
type Properties struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step,omitempty"` // used by numeric entry and hardware dials, not by dragging
	Name string  `yaml:"name"`

	HideName      bool `yaml:"hide_name,omitempty"`     // don't draw the name above the knob
	HideValue     bool `yaml:"hide_value,omitempty"`    // don't draw the value at all
	ValueInKnob   bool `yaml:"value_in_knob,omitempty"` // draw the value inside the dial instead of below it
	CircularMouse bool `yaml:"circular,omitempty"`      // use DragCircular instead of DragLinear

	// ScaleLimit is the half-sweep of the scale in degrees.
	// Defaults to DefaultScaleLimit.
	ScaleLimit float64 `yaml:"scale_limit,omitempty"`

	// Size is the width and height of the dial in pixels.
	// Defaults to AreaWidth.
	Size int `yaml:"size,omitempty"`
}

func (p Properties) withDefaults() Properties {
	if p.ScaleLimit <= 0 || p.ScaleLimit > 180 {
		p.ScaleLimit = DefaultScaleLimit
	}
	if p.Size <= 0 {
		p.Size = AreaWidth
	}
	return p
}

// Description is a set of knob definitions, normally loaded from a
// YAML file:
//
//	knobs:
//	  - name: Gain
//	    min: 0
//	    max: 200
//	    step: 1
//	    circular: true
//	    value: 100
type Description struct {
	Knobs []KnobDescription `yaml:"knobs"`
}

// KnobDescription is a single knob in a Description, with its
// initial value.
type KnobDescription struct {
	Properties `yaml:",inline"`
	Value      float64 `yaml:"value,omitempty"`
}

// ParseDescription decodes a YAML knob description.
func ParseDescription(b []byte) (*Description, error) {
	d := &Description{}
	if err := yaml.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("unable to parse knob description: %w", err)
	}
	for i := range d.Knobs {
		d.Knobs[i].Properties = d.Knobs[i].Properties.withDefaults()
		if d.Knobs[i].Name == "" {
			d.Knobs[i].Name = fmt.Sprintf("Knob %d", i+1)
		}
	}
	return d, nil
}

// LoadDescription reads and decodes a YAML knob description file.
func LoadDescription(path string) (*Description, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read knob description %q: %w", path, err)
	}
	return ParseDescription(b)
}

// NewKnobs creates a Knob for every entry in the description, each
// with its own WatchedFloat holding the initial value.
func (d *Description) NewKnobs() []*Knob {
	knobs := make([]*Knob, 0, len(d.Knobs))
	for _, kd := range d.Knobs {
		knobs = append(knobs, NewKnob(kd.Properties, NewWatchedFloat(kd.Value)))
	}
	return knobs
}
