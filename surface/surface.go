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

// Package surface drives a Loupedeck-style control surface (Loupedeck
// Live, Loupedeck CT, Razer Stream Controller) and lets its touch
// displays host rotary knobs.
//
// The devices look like a serial port that talks a mutant version of
// the Websocket protocol.  Button, dial, and touch events arrive via
// Listen and are delivered to bound callbacks; images are pushed to
// the device's displays with Display.Draw.
package surface

import (
	"fmt"
	"image/color"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Surface describes a connected control surface.
type Surface struct {
	Vendor   string
	Product  string
	Version  string
	SerialNo string

	serial *SerialWebSockConn
	conn   *websocket.Conn

	buttonBindings   map[Button]ButtonFunc
	buttonUpBindings map[Button]ButtonFunc
	dialBindings     map[Dial]DialFunc
	touchBindings    map[TouchScreen]TouchFunc
	closers          []func()

	displays map[string]*Display

	transactionID        uint8
	transactionMutex     sync.Mutex
	transactionCallbacks map[byte]transactionCallback
}

// ConnectAuto connects to a control surface by automatically locating
// the first USB Loupedeck device in the system.  If you have more than
// one device and want to connect to a specific one, then use
// ConnectPath().
func ConnectAuto() (*Surface, error) {
	c, err := ConnectSerialAuto()
	if err != nil {
		return nil, err
	}

	return tryConnect(c)
}

// ConnectPath connects to a control surface via a specified serial
// device.
func ConnectPath(serialPath string) (*Surface, error) {
	c, err := ConnectSerialPath(serialPath)
	if err != nil {
		return nil, err
	}

	return tryConnect(c)
}

type connectResult struct {
	s   *Surface
	err error
}

// tryConnect makes connections to USB devices more reliable by adding
// a timeout and a single retry.  Devices regularly ignore the first
// websocket upgrade request after being opened.
func tryConnect(c *SerialWebSockConn) (*Surface, error) {
	result := make(chan connectResult, 1)
	go func() {
		r := connectResult{}
		r.s, r.err = doConnect(c)
		result <- r
	}()

	select {
	case <-time.After(2 * time.Second):
		slog.Info("Timeout! Trying again without timeout.")
		return doConnect(c)

	case result := <-result:
		return result.s, result.err
	}
}

func doConnect(c *SerialWebSockConn) (*Surface, error) {
	dialer := websocket.Dialer{
		NetDial: func(network, addr string) (net.Conn, error) {
			slog.Debug("Dialing serial websocket", "port", c.Name)
			return c, nil
		},
		HandshakeTimeout: 1 * time.Second,
	}

	slog.Info("Attempting to open websocket connection", "port", c.Name)
	conn, resp, err := dialer.Dial("ws://fake", http.Header{})
	if err != nil {
		return nil, fmt.Errorf("unable to open websocket on %q: %w", c.Name, err)
	}
	slog.Debug("Connect successful", "resp", resp.Status)

	s := newSurface(conn, c)
	slog.Info("Found control surface", "vendor", s.Vendor, "product", s.Product)

	if err := s.Send(s.NewMessage(Reset, nil)); err != nil {
		return nil, fmt.Errorf("unable to reset: %w", err)
	}
	if err := s.SetBrightness(9); err != nil {
		return nil, err
	}

	// The responses come back asynchronously via Listen(), so
	// these have to use callbacks.
	if err := s.SendWithCallback(s.NewMessage(Version, nil), s.handleVersion); err != nil {
		return nil, fmt.Errorf("unable to request version: %w", err)
	}
	if err := s.SendWithCallback(s.NewMessage(Serial, nil), s.handleSerial); err != nil {
		return nil, fmt.Errorf("unable to request serial number: %w", err)
	}

	return s, nil
}

// handleVersion records the firmware version from a Version response.
func (s *Surface) handleVersion(m *Message) {
	if len(m.data) >= 3 {
		s.Version = fmt.Sprintf("%d.%d.%d", m.data[0], m.data[1], m.data[2])
	}
	slog.Info("Received 'Version' response", "version", s.Version)
}

// handleSerial records the serial number from a Serial response.
func (s *Surface) handleSerial(m *Message) {
	s.SerialNo = string(m.data)
	slog.Info("Received 'Serial' response", "serial", s.SerialNo)
}

func newSurface(conn *websocket.Conn, c *SerialWebSockConn) *Surface {
	s := &Surface{
		conn:                 conn,
		serial:               c,
		buttonBindings:       make(map[Button]ButtonFunc),
		buttonUpBindings:     make(map[Button]ButtonFunc),
		dialBindings:         make(map[Dial]DialFunc),
		touchBindings:        make(map[TouchScreen]TouchFunc),
		displays:             make(map[string]*Display),
		transactionCallbacks: make(map[byte]transactionCallback),
	}
	if c != nil {
		s.Vendor = c.Vendor
		s.Product = c.Product
	}
	return s
}

// Close shuts down the websocket and the serial port underneath it.
func (s *Surface) Close() error {
	err := s.conn.Close()
	if s.serial != nil {
		if serr := s.serial.Port.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// SetBrightness sets the overall brightness of the displays, 0-10.
func (s *Surface) SetBrightness(b int) error {
	if err := s.Send(s.NewMessage(SetBrightness, []byte{byte(b)})); err != nil {
		return fmt.Errorf("unable to set brightness: %w", err)
	}
	return nil
}

// SetButtonColor sets the color of a specific Button.  Only the
// buttons below the display have LEDs.
func (s *Surface) SetButtonColor(b Button, c color.RGBA) error {
	data := []byte{byte(b), c.R, c.G, c.B}
	if err := s.Send(s.NewMessage(SetColor, data)); err != nil {
		return fmt.Errorf("unable to set button color: %w", err)
	}
	return nil
}

// onClose registers f to be called when Listen returns.
func (s *Surface) onClose(f func()) {
	s.closers = append(s.closers, f)
}
