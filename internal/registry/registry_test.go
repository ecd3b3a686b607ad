package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type mockHandle struct{}

func (mockHandle) GetNodes() []string { return []string{"/dev/input/event99"} }
func (mockHandle) Close() error       { return nil }

type mockRegistration struct{}

func (mockRegistration) CreateDevice(o *device.CreateOptions, specific map[string]any) (device.Handle, error) {
	return mockHandle{}, nil
}

func (mockRegistration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"noop": func(h device.Handle, body map[string]any) (any, error) { return nil, nil },
	}
}

func TestRegisterAndLookup(t *testing.T) {
	registry.RegisterDevice("mockdevice", mockRegistration{})

	reg, ok := registry.GetRegistration("mockdevice")
	assert.True(t, ok)
	assert.NotNil(t, reg)

	// Lookup is case-insensitive.
	reg, ok = registry.GetRegistration("MockDevice")
	assert.True(t, ok)
	assert.NotNil(t, reg)

	h, err := reg.CreateDevice(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/dev/input/event99"}, h.GetNodes())

	_, ok = reg.Operations()["noop"]
	assert.True(t, ok)
}

func TestGetRegistrationMissing(t *testing.T) {
	_, ok := registry.GetRegistration("does-not-exist")
	assert.False(t, ok)
}

func TestListDeviceTypesContainsRegistered(t *testing.T) {
	registry.RegisterDevice("listedmock", mockRegistration{})

	found := false
	for _, tag := range registry.ListDeviceTypes() {
		if tag == "listedmock" {
			found = true
		}
	}
	assert.True(t, found)
}
