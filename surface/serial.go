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
	"net"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// USB vendor IDs of supported devices: Loupedeck and Razer.
var knownVendors = map[string]bool{
	"2ec2": true,
	"1532": true,
}

// SerialWebSockConn lets the Gorilla websocket library talk to a
// serial device.  The library accepts an external dialer, so all we
// need is something that satisfies net.Conn.
type SerialWebSockConn struct {
	Name    string
	Vendor  string
	Product string
	Port    serial.Port
}

func (l *SerialWebSockConn) Read(b []byte) (n int, err error) {
	n, err = l.Port.Read(b)
	slog.Debug("Read", "bytes", n, "err", err)
	return n, err
}

func (l *SerialWebSockConn) Write(b []byte) (n int, err error) {
	slog.Debug("Writing", "bytes", len(b))
	return l.Port.Write(b)
}

// Close is a no-op; the websocket library closes its connection on
// errors, but the port stays open until Surface.Close.
func (l *SerialWebSockConn) Close() error {
	return nil
}

func (l *SerialWebSockConn) LocalAddr() net.Addr {
	return nil
}
func (l *SerialWebSockConn) RemoteAddr() net.Addr {
	return nil
}

func (l *SerialWebSockConn) SetDeadline(t time.Time) error {
	return nil
}
func (l *SerialWebSockConn) SetReadDeadline(t time.Time) error {
	return nil
}
func (l *SerialWebSockConn) SetWriteDeadline(t time.Time) error {
	return nil
}

// ConnectSerialAuto opens the first USB serial port that belongs to a
// known control surface vendor.
func ConnectSerialAuto() (*SerialWebSockConn, error) {
	slog.Info("Enumerating ports")

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("unable to enumerate serial ports: %w", err)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("no serial ports found")
	}

	for _, port := range ports {
		slog.Debug("Checking port", "port", port.Name, "usb", port.IsUSB, "vid", port.VID)
		if !port.IsUSB || !knownVendors[port.VID] {
			continue
		}
		p, err := serial.Open(port.Name, &serial.Mode{})
		if err != nil {
			return nil, fmt.Errorf("unable to open port %q: %w", port.Name, err)
		}
		slog.Info("Opened port", "port", port.Name)
		return &SerialWebSockConn{
			Name:    port.Name,
			Vendor:  port.VID,
			Product: port.PID,
			Port:    p,
		}, nil
	}

	return nil, fmt.Errorf("no control surfaces found")
}

// ConnectSerialPath opens a specific serial device.
func ConnectSerialPath(serialPath string) (*SerialWebSockConn, error) {
	p, err := serial.Open(serialPath, &serial.Mode{})
	if err != nil {
		return nil, fmt.Errorf("unable to open serial device %q: %w", serialPath, err)
	}
	return &SerialWebSockConn{
		Name: serialPath,
		Port: p,
	}, nil
}
