package switchpad

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/device/gamepad"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{}

func (registration) CreateDevice(o *device.CreateOptions, _ map[string]any) (device.Handle, error) {
	return New(o)
}

func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"set_buttons": func(h device.Handle, body map[string]any) (any, error) {
			names, _ := body["buttons"].([]any)
			return nil, h.(*Gamepad).SetPressedButtons(gamepad.ParseButtonMask(names))
		},
		"set_stick": func(h device.Handle, body map[string]any) (any, error) {
			side := gamepad.StickSideFromString(registry.String(body, "side"))
			return nil, h.(*Gamepad).SetStick(side, registry.Int32(body, "x"), registry.Int32(body, "y"))
		},
	}
}

func init() { registry.RegisterDevice("switch", registration{}) }
