// Package switchpad provides a Switch-style evdev gamepad: digital
// triggers on BTN_TL2/BTN_TR2, the BTN_EAST=A/SOUTH=B/NORTH=X/WEST=Y face
// mapping, and an extra capture button on BTN_Z.
package switchpad

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/device/gamepad"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

var defaultDefinition = device.Definition{
	Name:    "Nintendo Switch Pro Controller",
	Bus:     evdevcodes.BusUSB,
	Vendor:  0x057E,
	Product: 0x2009,
	Version: 0x0001,
	Phys:    "vhid/switch0",
}

var buttonCodes = map[gamepad.Button]uint16{
	gamepad.ButtonA:      evdevcodes.BtnEast,
	gamepad.ButtonB:      evdevcodes.BtnSouth,
	gamepad.ButtonX:      evdevcodes.BtnNorth,
	gamepad.ButtonY:      evdevcodes.BtnWest,
	gamepad.ButtonTL:     evdevcodes.BtnTL,
	gamepad.ButtonTR:     evdevcodes.BtnTR,
	gamepad.ButtonTL2:    evdevcodes.BtnTL2,
	gamepad.ButtonTR2:    evdevcodes.BtnTR2,
	gamepad.ButtonSelect: evdevcodes.BtnSelect,
	gamepad.ButtonStart:  evdevcodes.BtnStart,
	gamepad.ButtonMode:   evdevcodes.BtnMode,
	gamepad.ButtonThumbL: evdevcodes.BtnThumbL,
	gamepad.ButtonThumbR: evdevcodes.BtnThumbR,
	gamepad.ButtonCapture: evdevcodes.BtnZ,
}

// Gamepad is a Switch-style controller with digital triggers and a
// capture button.
type Gamepad struct {
	*gamepad.Controller
}

// New creates the controller with Switch's digital-trigger wire identity.
func New(o *device.CreateOptions) (*Gamepad, error) {
	def := o.Apply(defaultDefinition)
	c, err := gamepad.New(gamepad.Config{
		Definition:  def,
		ButtonCodes: buttonCodes,
		Trigger:     gamepad.TriggerDigital,
	})
	if err != nil {
		return nil, err
	}
	return &Gamepad{Controller: c}, nil
}
