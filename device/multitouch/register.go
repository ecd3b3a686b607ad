package multitouch

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{ kind Kind }

func (r registration) CreateDevice(o *device.CreateOptions, _ map[string]any) (device.Handle, error) {
	return New(r.kind, o)
}

func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"place_finger": func(h device.Handle, body map[string]any) (any, error) {
			d := h.(*Device)
			id := int(registry.Float64(body, "finger_id"))
			return nil, d.PlaceFinger(id,
				registry.Float64(body, "x"), registry.Float64(body, "y"),
				registry.Float64(body, "pressure"), registry.Float64(body, "orientation"))
		},
		"release_finger": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Device).ReleaseFinger(int(registry.Float64(body, "finger_id")))
		},
		"set_button": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Device).SetLeftButton(registry.Bool(body, "pressed"))
		},
	}
}

func init() {
	registry.RegisterDevice("trackpad", registration{kind: Trackpad})
	registry.RegisterDevice("touchscreen", registration{kind: Touchscreen})
}
