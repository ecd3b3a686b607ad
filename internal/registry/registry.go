// Package registry is the central device-type directory: each device
// package registers itself from an init() function, exactly as the
// teacher's api.RegisterDevice did for its USB/IP device types. The REST
// façade and (eventually) the C ABI shim dispatch on the registered tag
// rather than switching on a closed set of concrete types.
package registry

import (
	"sync"

	"github.com/nullsink/vhid/device"
)

// OperationFunc performs one named per-device operation (e.g. a mouse's
// "move_rel") against a live handle, given the operation's decoded JSON
// body. The returned value, if non-nil, is marshaled back to the caller;
// a nil value with a nil error means "no content".
type OperationFunc func(h device.Handle, body map[string]any) (any, error)

// DeviceRegistration describes one device type: how to create it from a
// create request and which named operations it answers.
type DeviceRegistration interface {
	// CreateDevice builds a new handle from the base options plus any
	// type-specific fields carried in specific (the request's
	// deviceSpecific object).
	CreateDevice(o *device.CreateOptions, specific map[string]any) (device.Handle, error)
	// Operations returns this type's operation dispatch table, keyed by
	// the path segment following the device id (e.g. "move_rel").
	Operations() map[string]OperationFunc
}

var (
	mu       sync.RWMutex
	registry = make(map[string]DeviceRegistration)
)

// RegisterDevice registers a device type for dynamic creation and
// operation dispatch. Called from device package init() functions. The
// tag is case-insensitive and stored lowercased.
func RegisterDevice(tag string, reg DeviceRegistration) {
	mu.Lock()
	defer mu.Unlock()
	registry[toLower(tag)] = reg
}

// GetRegistration retrieves a registered device type by tag. ok is false
// if nothing is registered under that tag.
func GetRegistration(tag string) (reg DeviceRegistration, ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	reg, ok = registry[toLower(tag)]
	return reg, ok
}

// ListDeviceTypes returns every registered tag.
func ListDeviceTypes() []string {
	mu.RLock()
	defer mu.RUnlock()
	types := make([]string, 0, len(registry))
	for tag := range registry {
		types = append(types, tag)
	}
	return types
}

func toLower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
