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
	"image"
	"image/color"
	"testing"

	"maze.io/x/pixel/pixelcolor"
)

// TestNewTransactionID_RollsOverToOne checks that 0 is never used.
func TestNewTransactionID_RollsOverToOne(t *testing.T) {
	s := newSurface(nil, nil)
	s.transactionID = 254
	if id := s.newTransactionID(); id != 255 {
		t.Errorf("expected 255, got %d", id)
	}
	if id := s.newTransactionID(); id != 1 {
		t.Errorf("expected rollover to 1, got %d", id)
	}
}

// TestParseMessage checks decoding of a device message.
func TestParseMessage(t *testing.T) {
	m, err := ParseMessage([]byte{0x05, byte(ButtonPress), 0x00, 0x07, 0x01})
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if m.messageType != ButtonPress || m.transactionID != 0 || len(m.data) != 2 {
		t.Errorf("unexpected message %s", m)
	}
	if _, err := ParseMessage([]byte{0x01}); err == nil {
		t.Errorf("expected an error for a truncated message")
	}
}

// TestNewMessage_LengthCap checks that the length byte saturates.
func TestNewMessage_LengthCap(t *testing.T) {
	s := newSurface(nil, nil)
	m := s.NewMessage(WriteFramebuff, make([]byte, 1000))
	if m.length != 255 {
		t.Errorf("expected length 255, got %d", m.length)
	}
	b := m.asBytes()
	if len(b) != 1003 || b[1] != byte(WriteFramebuff) || b[2] != m.transactionID {
		t.Errorf("unexpected wire format header %v", b[:3])
	}
}

// TestDispatch_Bindings delivers events to bound callbacks.
func TestDispatch_Bindings(t *testing.T) {
	s := newSurface(nil, nil)

	var pressed, released []Button
	s.BindButton(Circle, func(b Button, _ ButtonStatus) { pressed = append(pressed, b) })
	s.BindButtonUp(Circle, func(b Button, _ ButtonStatus) { released = append(released, b) })

	var turns []int
	s.BindDial(CTDial, func(_ Dial, v int) { turns = append(turns, v) })

	type touch struct {
		status ButtonStatus
		x, y   uint16
	}
	var dialTouches, mainTouches []touch
	s.BindTouch(TouchDial, func(st ButtonStatus, x, y uint16) { dialTouches = append(dialTouches, touch{st, x, y}) })
	s.BindTouch(TouchMain, func(st ButtonStatus, x, y uint16) { mainTouches = append(mainTouches, touch{st, x, y}) })

	s.dispatch(&Message{messageType: ButtonPress, data: []byte{byte(Circle), byte(ButtonDown)}})
	s.dispatch(&Message{messageType: ButtonPress, data: []byte{byte(Circle), byte(ButtonUp)}})
	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(CTDial), 0x01}})
	s.dispatch(&Message{messageType: DialRotate, data: []byte{byte(CTDial), 0xff}})
	s.dispatch(&Message{messageType: TouchCT, data: []byte{0, 0, 120, 0, 30, 7}})
	s.dispatch(&Message{messageType: TouchEndCT, data: []byte{0, 0, 121, 0, 31, 7}})
	s.dispatch(&Message{messageType: Touch, data: []byte{0, 1, 44, 0, 90, 3}})
	s.dispatch(&Message{messageType: Touch, data: []byte{0, 1}}) // truncated, ignored

	if len(pressed) != 1 || len(released) != 1 {
		t.Errorf("expected one press and one release, got %v and %v", pressed, released)
	}
	if len(turns) != 2 || turns[0] != 1 || turns[1] != -1 {
		t.Errorf("expected turns [1 -1], got %v", turns)
	}
	wantDial := []touch{{ButtonDown, 120, 30}, {ButtonUp, 121, 31}}
	if len(dialTouches) != 2 || dialTouches[0] != wantDial[0] || dialTouches[1] != wantDial[1] {
		t.Errorf("expected %v, got %v", wantDial, dialTouches)
	}
	if len(mainTouches) != 1 || mainTouches[0] != (touch{ButtonDown, 300, 90}) {
		t.Errorf("unexpected main touches %v", mainTouches)
	}
}

// TestDispatch_TransactionCallback checks that responses reach their
// callback exactly once.
func TestDispatch_TransactionCallback(t *testing.T) {
	s := newSurface(nil, nil)
	calls := 0
	s.setCallback(9, func(m *Message) { calls++ })
	s.dispatch(&Message{transactionID: 9, messageType: Version, data: []byte{1, 2, 3}})
	s.dispatch(&Message{transactionID: 9, messageType: Version, data: []byte{1, 2, 3}})
	if calls != 1 {
		t.Errorf("expected one callback, got %d", calls)
	}
}

// TestFramebuffer_Endianness checks pixel byte order per display.
func TestFramebuffer_Endianness(t *testing.T) {
	s := newSurface(nil, nil)
	s.SetDisplays()

	im := image.NewRGBA(image.Rect(0, 0, 1, 1))
	red := color.RGBA{255, 0, 0, 255}
	im.Set(0, 0, red)
	pixel := pixelcolor.ToRGB565(red)
	lo, hi := byte(pixel&0xff), byte(pixel>>8)

	main := s.GetDisplay("main").framebuffer(im, 3, 4)
	if len(main) != 12 || main[10] != lo || main[11] != hi {
		t.Errorf("expected little-endian pixel, got % x", main)
	}
	if main[1] != 'A' || main[3] != 3 || main[5] != 4 || main[7] != 1 || main[9] != 1 {
		t.Errorf("unexpected header % x", main[:10])
	}

	dial := s.GetDisplay("dial").framebuffer(im, 0, 0)
	if dial[10] != hi || dial[11] != lo {
		t.Errorf("expected big-endian pixel on the dial, got % x", dial[10:])
	}
}

// TestRegion_Origin checks touch coordinates of regions.
func TestRegion_Origin(t *testing.T) {
	s := newSurface(nil, nil)
	s.SetDisplays()
	x, y := s.GetDisplay("main").At(90, 10).Origin()
	if x != 150 || y != 10 {
		t.Errorf("expected (150, 10), got (%d, %d)", x, y)
	}
	if s.GetDisplay("dial").TouchScreen() != TouchDial {
		t.Errorf("expected the dial display to use the dial touch screen")
	}
}

// TestDispatch_DeviceInfo checks that the version and serial number
// are only known once their responses have been dispatched.
func TestDispatch_DeviceInfo(t *testing.T) {
	s := newSurface(nil, nil)
	s.setCallback(3, s.handleVersion)
	s.setCallback(4, s.handleSerial)
	if s.Version != "" || s.SerialNo != "" {
		t.Fatalf("expected no device info before responses, got %q/%q", s.Version, s.SerialNo)
	}

	s.dispatch(&Message{transactionID: 3, messageType: Version, data: []byte{0, 9, 2}})
	s.dispatch(&Message{transactionID: 4, messageType: Serial, data: []byte("LDD1234")})
	if s.Version != "0.9.2" {
		t.Errorf("expected version 0.9.2, got %q", s.Version)
	}
	if s.SerialNo != "LDD1234" {
		t.Errorf("expected serial LDD1234, got %q", s.SerialNo)
	}
}
