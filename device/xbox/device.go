// Package xbox provides an Xbox-One-style evdev gamepad: analog triggers
// on ABS_Z/ABS_RZ and the BTN_SOUTH=A/EAST=B/NORTH=X/WEST=Y face mapping.
package xbox

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/device/gamepad"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

var defaultDefinition = device.Definition{
	Name:    "Xbox Wireless Controller",
	Bus:     evdevcodes.BusUSB,
	Vendor:  0x045E,
	Product: 0x02EA,
	Version: 0x0408,
	Phys:    "vhid/xbox0",
}

var buttonCodes = map[gamepad.Button]uint16{
	gamepad.ButtonA:       evdevcodes.BtnSouth,
	gamepad.ButtonB:       evdevcodes.BtnEast,
	gamepad.ButtonX:       evdevcodes.BtnNorth,
	gamepad.ButtonY:       evdevcodes.BtnWest,
	gamepad.ButtonTL:      evdevcodes.BtnTL,
	gamepad.ButtonTR:      evdevcodes.BtnTR,
	gamepad.ButtonSelect:  evdevcodes.BtnSelect,
	gamepad.ButtonStart:   evdevcodes.BtnStart,
	gamepad.ButtonMode:    evdevcodes.BtnMode,
	gamepad.ButtonThumbL:  evdevcodes.BtnThumbL,
	gamepad.ButtonThumbR:  evdevcodes.BtnThumbR,
}

// Gamepad is an Xbox-One-style controller.
type Gamepad struct {
	*gamepad.Controller
}

// New creates the controller with Xbox's analog-trigger wire identity.
func New(o *device.CreateOptions) (*Gamepad, error) {
	def := o.Apply(defaultDefinition)
	c, err := gamepad.New(gamepad.Config{
		Definition:  def,
		ButtonCodes: buttonCodes,
		Trigger:     gamepad.TriggerAnalog,
	})
	if err != nil {
		return nil, err
	}
	return &Gamepad{Controller: c}, nil
}
