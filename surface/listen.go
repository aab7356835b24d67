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
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
)

// Listen waits for events from the device and calls callbacks as
// configured.  It returns when the connection fails; callbacks are
// never called concurrently.
func (s *Surface) Listen() error {
	slog.Info("Listening")
	defer func() {
		for _, f := range s.closers {
			f()
		}
	}()

	for {
		websocketMsgType, message, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read failed: %w", err)
		}

		if websocketMsgType != websocket.BinaryMessage {
			slog.Warn("Unknown websocket message type received", "type", websocketMsgType)
			continue
		}

		m, err := ParseMessage(message)
		if err != nil {
			slog.Warn("Skipping message", "err", err)
			continue
		}
		slog.Debug("Read", "message", m.String())
		s.dispatch(m)
	}
}

// dispatch delivers one message to its transaction callback or to
// the bound input callbacks.
func (s *Surface) dispatch(m *Message) {
	if m.transactionID != 0 {
		if c := s.takeCallback(m.transactionID); c != nil {
			c(m)
		}
		return
	}

	switch m.messageType {
	case ButtonPress:
		if len(m.data) < 2 {
			break
		}
		button := Button(m.data[0])
		upDown := ButtonStatus(m.data[1])
		if upDown == ButtonDown && s.buttonBindings[button] != nil {
			s.buttonBindings[button](button, upDown)
		} else if upDown == ButtonUp && s.buttonUpBindings[button] != nil {
			s.buttonUpBindings[button](button, upDown)
		} else {
			slog.Debug("Received uncaught button press message", "button", button, "upDown", upDown)
		}

	case DialRotate:
		if len(m.data) < 2 {
			break
		}
		dial := Dial(m.data[0])
		v := int(int8(m.data[1]))
		if f := s.dialBindings[dial]; f != nil {
			f(dial, v)
		} else {
			slog.Debug("Received dial rotate message", "dial", dial, "value", v)
		}

	case Touch, TouchEnd, TouchCT, TouchEndCT:
		if len(m.data) < 6 {
			break
		}
		x := binary.BigEndian.Uint16(m.data[1:])
		y := binary.BigEndian.Uint16(m.data[3:])
		id := m.data[5] // Not sure what this is for

		screen := TouchMain
		if m.messageType == TouchCT || m.messageType == TouchEndCT {
			screen = TouchDial
		}
		status := ButtonDown
		if m.messageType == TouchEnd || m.messageType == TouchEndCT {
			status = ButtonUp
		}

		if f := s.touchBindings[screen]; f != nil {
			f(status, x, y)
		} else {
			slog.Debug("Received touch message", "screen", screen, "status", status, "x", x, "y", y, "id", id)
		}

	default:
		slog.Debug("Received unknown message", "message", m.String())
	}
}
