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
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType identifies the commands and events of the device protocol.
type MessageType byte

// See 'COMMANDS' in https://github.com/foxxyz/loupedeck/blob/master/constants.js
const (
	ButtonPress    MessageType = 0x00
	DialRotate     MessageType = 0x01
	SetColor       MessageType = 0x02
	Serial         MessageType = 0x03
	Reset          MessageType = 0x06
	Version        MessageType = 0x07
	SetBrightness  MessageType = 0x09
	MCU            MessageType = 0x0d
	Draw           MessageType = 0x0f
	WriteFramebuff MessageType = 0x10
	SetVibration   MessageType = 0x1b
	Touch          MessageType = 0x4d
	TouchCT        MessageType = 0x52
	TouchEnd       MessageType = 0x6d
	TouchEndCT     MessageType = 0x72
)

type transactionCallback func(m *Message)

// Message is a single message to or from the device.  Most code can
// use higher-level functions in this package and never touch
// messages directly.
type Message struct {
	transactionID byte
	messageType   MessageType
	length        byte
	data          []byte
}

// NewMessage creates a new low-level message with a specified type
// and data.
func (s *Surface) NewMessage(messageType MessageType, data []byte) *Message {
	length := len(data) + 3
	if length > 255 {
		length = 255
	}

	return &Message{
		transactionID: s.newTransactionID(),
		messageType:   messageType,
		length:        byte(length),
		data:          data,
	}
}

// ParseMessage decodes an incoming message.
func ParseMessage(b []byte) (*Message, error) {
	if len(b) < 3 {
		return nil, fmt.Errorf("message too short: %d bytes", len(b))
	}
	return &Message{
		length:        b[0],
		messageType:   MessageType(b[1]),
		transactionID: b[2],
		data:          b[3:],
	}, nil
}

// asBytes returns the wire-format form of the message.
func (m *Message) asBytes() []byte {
	b := make([]byte, 3, 3+len(m.data))
	b[0] = m.length
	b[1] = byte(m.messageType)
	b[2] = m.transactionID
	return append(b, m.data...)
}

// String returns a human-readable form of the message for debugging use.
func (m *Message) String() string {
	d := m.data

	if len(d) > 16 {
		d = d[0:16]
		return fmt.Sprintf("{len: %d, type: %02x, txn: %02x, data: %v..., actual_len: %d}", m.length, m.messageType, m.transactionID, d, len(m.data))
	}
	return fmt.Sprintf("{len: %d, type: %02x, txn: %02x, data: %v}", m.length, m.messageType, m.transactionID, d)
}

// newTransactionID picks the next 8-bit transaction ID, used to match
// responses with requests.  IDs roll over back to 1 (not 0); 0 marks
// unsolicited events from the device.
func (s *Surface) newTransactionID() uint8 {
	s.transactionMutex.Lock()
	defer s.transactionMutex.Unlock()
	t := s.transactionID
	t++
	if t == 0 {
		t = 1
	}
	s.transactionID = t
	return t
}

func (s *Surface) setCallback(id byte, c transactionCallback) {
	s.transactionMutex.Lock()
	defer s.transactionMutex.Unlock()
	if c == nil {
		delete(s.transactionCallbacks, id)
		return
	}
	s.transactionCallbacks[id] = c
}

// takeCallback returns and forgets the callback for a transaction.
func (s *Surface) takeCallback(id byte) transactionCallback {
	s.transactionMutex.Lock()
	defer s.transactionMutex.Unlock()
	c := s.transactionCallbacks[id]
	delete(s.transactionCallbacks, id)
	return c
}

// Send sends a message to the device.
func (s *Surface) Send(m *Message) error {
	slog.Debug("Sending", "message", m.String())
	s.setCallback(m.transactionID, nil)
	return s.send(m)
}

func (s *Surface) send(m *Message) error {
	return s.conn.WriteMessage(websocket.BinaryMessage, m.asBytes())
}

// SendWithCallback sends a message and registers a callback.  When
// (or if) the device responds, the callback is called from Listen
// with the response.
func (s *Surface) SendWithCallback(m *Message, c transactionCallback) error {
	slog.Debug("Sending with callback", "message", m.String())
	s.setCallback(m.transactionID, c)
	return s.send(m)
}

// SendAndWait sends a message and waits for the response.  Listen
// must be running in another goroutine.
func (s *Surface) SendAndWait(m *Message, timeout time.Duration) (*Message, error) {
	ch := make(chan *Message, 1)
	err := s.SendWithCallback(m, func(m2 *Message) {
		ch <- m2
	})
	if err != nil {
		return nil, fmt.Errorf("unable to send: %w", err)
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-time.After(timeout):
		s.setCallback(m.transactionID, nil)
		return nil, fmt.Errorf("timeout waiting for response to %s", m.String())
	}
}
