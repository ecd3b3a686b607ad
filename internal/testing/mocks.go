// Package testing provides shared test doubles for exercising the device
// registry and REST façade without a real kernel uinput/uhid backend.
package testing

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type mockRegistration struct {
	createFunc func(o *device.CreateOptions, specific map[string]any) (device.Handle, error)
	ops        map[string]registry.OperationFunc
}

func (m *mockRegistration) CreateDevice(o *device.CreateOptions, specific map[string]any) (device.Handle, error) {
	return m.createFunc(o, specific)
}

func (m *mockRegistration) Operations() map[string]registry.OperationFunc { return m.ops }

// CreateMockRegistration builds a registry.DeviceRegistration backed by the
// given create function and operation set, for tests that need a fake
// device type dispatched through the real registry/manager machinery.
func CreateMockRegistration(
	cf func(o *device.CreateOptions, specific map[string]any) (device.Handle, error),
	ops map[string]registry.OperationFunc,
) registry.DeviceRegistration {
	return &mockRegistration{createFunc: cf, ops: ops}
}

// MockHandle is a device.Handle double that records whether Close was
// called and returns a fixed set of device nodes.
type MockHandle struct {
	Nodes   []string
	Closed  bool
	CloseFn func() error
}

func (m *MockHandle) GetNodes() []string { return m.Nodes }

func (m *MockHandle) Close() error {
	m.Closed = true
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}
