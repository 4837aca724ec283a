package midi

import (
	"errors"
	"fmt"
	"log"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ThruVelocity is the Note On velocity used when forwarding key presses
const ThruVelocity = 100

// ErrNoPort is returned when a listener or thru output is opened without a port name
var ErrNoPort = errors.New("no MIDI port name given")

// KeyCallback is called when a key is pressed or released on a MIDI device
type KeyCallback func(key int, pressed bool)

// Manager handles MIDI port discovery, input listeners and thru output
type Manager struct{}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() []string {
	ins := midi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() []string {
	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

// GetInPort returns an input port by name
func (m *Manager) GetInPort(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if in.String() == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("input port not found: %s", name)
}

// GetOutPort returns an output port by name
func (m *Manager) GetOutPort(name string) (drivers.Out, error) {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			return out, nil
		}
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}

// StartListening begins listening for key events on the named input port.
// The callback runs on the driver's goroutine. The returned function stops
// the listener.
func (m *Manager) StartListening(inPortName string, callback KeyCallback) (func(), error) {
	if inPortName == "" {
		return nil, ErrNoPort
	}

	inPort, err := m.GetInPort(inPortName)
	if err != nil {
		return nil, err
	}

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		if key, pressed, ok := HandleMessage(msg); ok {
			callback(key, pressed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}

	return stop, nil
}

// OpenThru returns a callback forwarding key events to the named output port
// as Note On/Off on channel 0. Keys outside the MIDI range are dropped.
func (m *Manager) OpenThru(outPortName string) (KeyCallback, error) {
	if outPortName == "" {
		return nil, ErrNoPort
	}

	outPort, err := m.GetOutPort(outPortName)
	if err != nil {
		return nil, err
	}

	send, err := midi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}

	return NewThru(send), nil
}

// NewThru builds a KeyCallback on top of a gomidi send function
func NewThru(send func(midi.Message) error) KeyCallback {
	return func(key int, pressed bool) {
		msg, ok := KeyMessage(key, pressed)
		if !ok {
			return
		}
		if err := send(msg); err != nil {
			log.Printf("Failed to send %s: %v", msg, err)
		}
	}
}
