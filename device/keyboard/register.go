package keyboard

import (
	"time"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{}

func (registration) CreateDevice(o *device.CreateOptions, specific map[string]any) (device.Handle, error) {
	opts := &Options{Create: o}
	if ms := registry.Float64(specific, "repeat_interval_ms"); ms > 0 {
		opts.RepeatInterval = time.Duration(ms) * time.Millisecond
	}
	return New(opts)
}

func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"press": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Keyboard).Press(int(registry.Float64(body, "vk")))
		},
		"release": func(h device.Handle, body map[string]any) (any, error) {
			return nil, h.(*Keyboard).Release(int(registry.Float64(body, "vk")))
		},
	}
}

func init() { registry.RegisterDevice("keyboard", registration{}) }
