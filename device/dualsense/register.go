package dualsense

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{}

func (registration) CreateDevice(o *device.CreateOptions, _ map[string]any) (device.Handle, error) {
	return New(o)
}

var dualsenseButtonNames = map[string]ButtonMask{
	"x": ButtonX, "a": ButtonA, "b": ButtonB, "y": ButtonY,
	"l1": ButtonL1, "r1": ButtonR1, "l2": ButtonL2, "r2": ButtonR2,
	"create": ButtonCreate, "options": ButtonOptions, "l3": ButtonL3, "r3": ButtonR3,
	"home": ButtonHome, "touchpad": ButtonTouchpad, "mic": ButtonMic,
	"dpad_up": ButtonDpadUp, "dpad_down": ButtonDpadDown,
	"dpad_left": ButtonDpadLeft, "dpad_right": ButtonDpadRight,
}

func parseButtonMask(names []any) ButtonMask {
	var mask ButtonMask
	for _, n := range names {
		s, ok := n.(string)
		if !ok {
			continue
		}
		if b, ok := dualsenseButtonNames[s]; ok {
			mask |= b
		}
	}
	return mask
}

// set_state accepts the full abstract pose in one shot: sticks, triggers,
// buttons, motion sensors and battery. Fields absent from the body
// default to zero, except battery_level, which defaults to 10.
func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"set_state": func(h device.Handle, body map[string]any) (any, error) {
			names, _ := body["buttons"].([]any)
			s := State{
				LX: int16(registry.Float64(body, "lx")), LY: int16(registry.Float64(body, "ly")),
				RX: int16(registry.Float64(body, "rx")), RY: int16(registry.Float64(body, "ry")),
				L2: uint8(registry.Float64(body, "l2")), R2: uint8(registry.Float64(body, "r2")),
				Buttons:       parseButtonMask(names),
				GyroX:         registry.Float64(body, "gyro_x"),
				GyroY:         registry.Float64(body, "gyro_y"),
				GyroZ:         registry.Float64(body, "gyro_z"),
				AccelX:        registry.Float64(body, "accel_x"),
				AccelY:        registry.Float64(body, "accel_y"),
				AccelZ:        registry.Float64(body, "accel_z"),
				BatteryLevel:  uint8(registry.Float64Or(body, "battery_level", 10)),
				BatteryStatus: BatteryStatus(registry.Float64(body, "battery_status")),
			}
			return nil, h.(*Device).UpdateState(s)
		},
	}
}

func init() { registry.RegisterDevice("ps5", registration{}) }
