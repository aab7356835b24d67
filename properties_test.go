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
	"os"
	"path/filepath"
	"testing"
)

const testDescription = `
knobs:
  - name: Gain
    min: 0
    max: 200
    step: 1
    circular: true
    value: 100
  - min: -1
    max: 1
    hide_name: true
    value_in_knob: true
    scale_limit: 150
    size: 240
`

// TestParseDescription checks decoding and defaults.
func TestParseDescription(t *testing.T) {
	d, err := ParseDescription([]byte(testDescription))
	if err != nil {
		t.Fatalf("ParseDescription: %v", err)
	}
	if len(d.Knobs) != 2 {
		t.Fatalf("expected 2 knobs, got %d", len(d.Knobs))
	}

	gain := d.Knobs[0]
	if gain.Name != "Gain" || gain.Min != 0 || gain.Max != 200 || gain.Step != 1 || !gain.CircularMouse || gain.Value != 100 {
		t.Errorf("unexpected first knob %+v", gain)
	}
	if gain.ScaleLimit != DefaultScaleLimit || gain.Size != AreaWidth {
		t.Errorf("expected defaults for scale limit and size, got %v and %v", gain.ScaleLimit, gain.Size)
	}

	second := d.Knobs[1]
	if second.Name != "Knob 2" {
		t.Errorf("expected a generated name, got %q", second.Name)
	}
	if !second.HideName || !second.ValueInKnob || second.ScaleLimit != 150 || second.Size != 240 {
		t.Errorf("unexpected second knob %+v", second)
	}

	knobs := d.NewKnobs()
	if len(knobs) != 2 || knobs[0].Get() != 100 || knobs[1].Get() != 0 {
		t.Errorf("unexpected knobs from description")
	}
	start, end := knobs[1].Scale().Degrees()
	if !near(start, -150) || !near(end, 150) {
		t.Errorf("expected a -150..150 scale, got %v..%v", start, end)
	}
}

// TestParseDescription_Invalid checks that bad YAML is reported.
func TestParseDescription_Invalid(t *testing.T) {
	if _, err := ParseDescription([]byte("knobs: [")); err == nil {
		t.Errorf("expected an error for malformed YAML")
	}
}

// TestLoadDescription reads a description from disk.
func TestLoadDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knobs.yaml")
	if err := os.WriteFile(path, []byte(testDescription), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDescription(path)
	if err != nil {
		t.Fatalf("LoadDescription: %v", err)
	}
	if len(d.Knobs) != 2 {
		t.Errorf("expected 2 knobs, got %d", len(d.Knobs))
	}

	if _, err := LoadDescription(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
