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
	"errors"
	"image"
	"image/color"
	"testing"
)

func renderKnob(t *testing.T, props Properties, value float64, tristate bool) *image.RGBA {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	k := NewKnob(props, NewWatchedFloat(value))
	k.Set(value, tristate)
	im, err := r.Render(k)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return im
}

// sameColor compares colors, allowing for rounding in the scaler.
func sameColor(a, b color.Color) bool {
	const tolerance = 4 << 8
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	diff := func(x, y uint32) bool {
		if x > y {
			return x-y > tolerance
		}
		return y-x > tolerance
	}
	return !diff(r1, r2) && !diff(g1, g2) && !diff(b1, b2) && !diff(a1, a2)
}

// TestRender_Size checks the image size for each layout option.
func TestRender_Size(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		w, h  int
	}{
		{"everything", Properties{Max: 1, Name: "A"}, 100, 140},
		{"no name", Properties{Max: 1, HideName: true}, 100, 120},
		{"value in knob", Properties{Max: 1, ValueInKnob: true}, 100, 120},
		{"bare", Properties{Max: 1, HideName: true, HideValue: true}, 100, 100},
		{"big", Properties{Max: 1, HideName: true, HideValue: true, Size: 240}, 240, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := renderKnob(t, tt.props, 0.5, false)
			if im.Bounds().Dx() != tt.w || im.Bounds().Dy() != tt.h {
				t.Errorf("expected %dx%d, got %v", tt.w, tt.h, im.Bounds())
			}
		})
	}
}

// TestRender_MarkerFollowsValue checks that the marker is drawn in the
// direction of the value: up for the middle of the range, and not in
// the opposite direction.
func TestRender_MarkerFollowsValue(t *testing.T) {
	props := Properties{Min: 0, Max: 10, HideName: true, HideValue: true}
	im := renderKnob(t, props, 5, false)

	// 15px above the center is on the marker; 25px below is not.
	above := im.At(50, 35)
	below := im.At(50, 75)
	if !sameColor(above, DefaultTheme.Marker) {
		t.Errorf("expected the marker above the center, got %v", above)
	}
	if sameColor(below, DefaultTheme.Marker) {
		t.Errorf("expected no marker below the center")
	}

	// At the max end of the scale the marker points lower right.
	im = renderKnob(t, props, 10, false)
	if !sameColor(im.At(62, 62), DefaultTheme.Marker) {
		t.Errorf("expected the marker at the lower right, got %v", im.At(62, 62))
	}
	if sameColor(im.At(50, 35), DefaultTheme.Marker) {
		t.Errorf("expected no marker at the top for the max value")
	}
}

// TestRender_Background checks that the corners are left as background.
func TestRender_Background(t *testing.T) {
	im := renderKnob(t, Properties{Max: 1, HideName: true, HideValue: true}, 0, false)
	if !sameColor(im.At(0, 0), DefaultTheme.Background) {
		t.Errorf("expected background in the corner, got %v", im.At(0, 0))
	}
}

// TestRender_Tristate checks that tristate values use the flattened palette.
func TestRender_Tristate(t *testing.T) {
	props := Properties{Min: 0, Max: 10, HideName: true, HideValue: true}
	im := renderKnob(t, props, 5, true)
	if sameColor(im.At(50, 35), DefaultTheme.Marker) {
		t.Errorf("expected a flattened marker color for tristate values")
	}
	if !sameColor(im.At(50, 35), DefaultTheme.embossed().Marker) {
		t.Errorf("expected the embossed marker color, got %v", im.At(50, 35))
	}
}

func TestRender_EmptyCanvas(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if _, err := r.Render(&Knob{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("expected ErrEmptyCanvas for a zero Knob, got %v", err)
	}
}
