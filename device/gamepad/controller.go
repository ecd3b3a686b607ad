// Package gamepad implements the abstract controller shared by the
// Xbox-One-style and Switch-style evdev gamepads: 13 face/shoulder/stick
// buttons, a D-pad, two analog sticks, two triggers and force feedback.
// The wire-level differences (trigger encoding, button-to-BTN_* mapping)
// are supplied by each caller as a ButtonMap/TriggerMode.
package gamepad

import (
	"sync"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

// Button is one bit of the abstract 18-bit button mask: 14 named buttons
// plus the 4 D-pad directions, which are emitted on ABS_HAT0X/Y instead
// of BTN_* codes.
type Button uint32

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonTL
	ButtonTR
	ButtonTL2
	ButtonTR2
	ButtonSelect
	ButtonStart
	ButtonMode
	ButtonThumbL
	ButtonThumbR
	ButtonCapture
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
)

var namedButtons = []Button{
	ButtonA, ButtonB, ButtonX, ButtonY,
	ButtonTL, ButtonTR, ButtonTL2, ButtonTR2,
	ButtonSelect, ButtonStart, ButtonMode, ButtonThumbL, ButtonThumbR,
	ButtonCapture,
}

// TriggerMode selects how ButtonTL2/ButtonTR2 are wired: analog devices
// (Xbox) carry them as ABS_Z/ABS_RZ and ignore the mask bits; digital
// devices (Switch) emit them as ordinary BTN_* presses.
type TriggerMode int

const (
	TriggerAnalog TriggerMode = iota
	TriggerDigital
)

// StickSide selects which analog stick an operation addresses.
type StickSide int

const (
	StickLeft StickSide = iota
	StickRight
)

// Config describes one gamepad variant's wire-level identity.
type Config struct {
	Definition  device.Definition
	ButtonCodes map[Button]uint16 // abstract button -> BTN_* code (excludes TL2/TR2 in TriggerAnalog mode)
	Trigger     TriggerMode
}

// sink is the subset of *evdev.Sink the Controller depends on, narrowed
// so tests can exercise button/stick/trigger logic against a fake.
type sink interface {
	Emit(evType, code uint16, value int32) error
	Frame() error
	GetNodes() []string
	Close() error
}

// Controller is the shared evdev + force-feedback gamepad implementation.
type Controller struct {
	sink sink
	ff   *evdev.FFWorker

	mu       sync.Mutex
	buttons  Button
	dpadX    int32
	dpadY    int32
	cfg      Config
}

// New creates the evdev device (with EV_FF advertised) and starts its
// force-feedback worker.
func New(cfg Config) (*Controller, error) {
	keys := make([]uint16, 0, len(cfg.ButtonCodes))
	for _, code := range cfg.ButtonCodes {
		keys = append(keys, code)
	}

	axes := []evdev.AbsAxis{
		{Code: evdevcodes.AbsX, Min: -32768, Max: 32767},
		{Code: evdevcodes.AbsY, Min: -32768, Max: 32767},
		{Code: evdevcodes.AbsRX, Min: -32768, Max: 32767},
		{Code: evdevcodes.AbsRY, Min: -32768, Max: 32767},
		{Code: evdevcodes.AbsHat0X, Min: -1, Max: 1},
		{Code: evdevcodes.AbsHat0Y, Min: -1, Max: 1},
	}
	if cfg.Trigger == TriggerAnalog {
		axes = append(axes,
			evdev.AbsAxis{Code: evdevcodes.AbsZ, Min: 0, Max: 255},
			evdev.AbsAxis{Code: evdevcodes.AbsRZ, Min: 0, Max: 255},
		)
	}

	sink, err := evdev.Create(cfg.Definition, evdev.Bits{Keys: keys, FF: true}, axes, nil)
	if err != nil {
		return nil, err
	}

	return &Controller{
		sink: sink,
		ff:   evdev.NewFFWorker(sink, nil),
		cfg:  cfg,
	}, nil
}

// SetRumbleCallback installs the force-feedback rumble callback.
func (c *Controller) SetRumbleCallback(f func(weak, strong uint16)) {
	c.ff.SetRumbleCallback(f)
}

// SetPressedButtons computes changed = newMask XOR previous, emits a
// key-event for each changed button, updates the D-pad HAT axes and
// frames once.
func (c *Controller) SetPressedButtons(newMask Button) error {
	c.mu.Lock()
	prev := c.buttons
	c.buttons = newMask
	c.mu.Unlock()

	changed := prev ^ newMask

	for _, b := range namedButtons {
		if changed&b == 0 {
			continue
		}
		code, ok := c.buttonCode(b)
		if !ok {
			continue
		}
		value := int32(0)
		if newMask&b != 0 {
			value = 1
		}
		if err := c.sink.Emit(evdevcodes.EvKey, code, value); err != nil {
			return err
		}
	}

	if changed&(ButtonDpadUp|ButtonDpadDown|ButtonDpadLeft|ButtonDpadRight) != 0 {
		x, y := dpadAxes(newMask)
		if err := c.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsHat0X, x); err != nil {
			return err
		}
		if err := c.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsHat0Y, y); err != nil {
			return err
		}
	}

	return c.sink.Frame()
}

func (c *Controller) buttonCode(b Button) (uint16, bool) {
	if (b == ButtonTL2 || b == ButtonTR2) && c.cfg.Trigger == TriggerAnalog {
		return 0, false
	}
	code, ok := c.cfg.ButtonCodes[b]
	return code, ok
}

func dpadAxes(mask Button) (x, y int32) {
	if mask&ButtonDpadLeft != 0 {
		x = -1
	} else if mask&ButtonDpadRight != 0 {
		x = 1
	}
	if mask&ButtonDpadUp != 0 {
		y = -1
	} else if mask&ButtonDpadDown != 0 {
		y = 1
	}
	return x, y
}

// SetStick emits ABS_X/Y (left) or ABS_RX/RY (right) with y negated: the
// caller's convention is "+Y is up", evdev's is "+Y is down".
func (c *Controller) SetStick(side StickSide, x, y int32) error {
	xCode, yCode := evdevcodes.AbsX, evdevcodes.AbsY
	if side == StickRight {
		xCode, yCode = evdevcodes.AbsRX, evdevcodes.AbsRY
	}
	if err := c.sink.Emit(evdevcodes.EvAbs, uint16(xCode), x); err != nil {
		return err
	}
	if err := c.sink.Emit(evdevcodes.EvAbs, uint16(yCode), -y); err != nil {
		return err
	}
	return c.sink.Frame()
}

// SetAnalogTrigger emits ABS_Z (left) / ABS_RZ (right) in [0, 255];
// ignored on TriggerDigital devices, which use SetPressedButtons instead.
func (c *Controller) SetAnalogTrigger(side StickSide, value int32) error {
	if c.cfg.Trigger != TriggerAnalog {
		return nil
	}
	code := evdevcodes.AbsZ
	if side == StickRight {
		code = evdevcodes.AbsRZ
	}
	if err := c.sink.Emit(evdevcodes.EvAbs, uint16(code), value); err != nil {
		return err
	}
	return c.sink.Frame()
}

// GetNodes returns the evdev node(s) for this controller.
func (c *Controller) GetNodes() []string { return c.sink.GetNodes() }

// Close stops the FF worker and tears down the evdev device.
func (c *Controller) Close() error {
	c.ff.Stop()
	return c.sink.Close()
}
