package mouse

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{}

func (registration) CreateDevice(o *device.CreateOptions, _ map[string]any) (device.Handle, error) {
	return New(o)
}

func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"move_rel": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Mouse).MoveRel(registry.Int32(body, "dx"), registry.Int32(body, "dy"))
		},
		"move_abs": func(h device.Handle, body map[string]any) (any, error) {
			m := h.(*Mouse)
			x, y := registry.Int32(body, "x"), registry.Int32(body, "y")
			sw, sh := registry.Int32(body, "screen_width"), registry.Int32(body, "screen_height")
			return nil, m.MoveAbs(x, y, sw, sh)
		},
		"press": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Mouse).Press(registry.Uint16(body, "button"))
		},
		"release": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Mouse).Release(registry.Uint16(body, "button"))
		},
		"scroll": func(h device.Handle, body map[string]any) (any, error) {
			m := h.(*Mouse)
			if v := registry.Int32(body, "horizontal"); v != 0 {
				return nil, m.HorizontalScroll(v)
			}
			return nil, m.VerticalScroll(registry.Int32(body, "vertical"))
		},
	}
}

func init() { registry.RegisterDevice("mouse", registration{}) }
