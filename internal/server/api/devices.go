package api

import (
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/nullsink/vhid/apitypes"
	apierror "github.com/nullsink/vhid/internal/server/api/error"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

// liveDevice is one device instance the façade created and still owns.
type liveDevice struct {
	id       string
	clientID string
	typ      string
	handle   device.Handle
	reg      registry.DeviceRegistration
}

// Manager owns every device instance created through the REST façade for
// the lifetime of the server process.
type Manager struct {
	mu      sync.RWMutex
	devices map[string]*liveDevice
}

// NewManager returns an empty device manager.
func NewManager() *Manager {
	return &Manager{devices: make(map[string]*liveDevice)}
}

// stableHash turns the device's first node path into the short id the
// REST façade exposes, per spec: device_id = stable_hash(first device
// node path). FNV-1a needs no cryptographic properties here, only a
// short, stable, collision-resistant-enough label.
func stableHash(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", h.Sum32())
}

func toAPIDevice(ld *liveDevice) apitypes.Device {
	return apitypes.Device{
		DeviceID:    ld.id,
		ClientID:    ld.clientID,
		Type:        ld.typ,
		DeviceNodes: ld.handle.GetNodes(),
	}
}

// List returns every live device.
func (m *Manager) List() []apitypes.Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]apitypes.Device, 0, len(m.devices))
	for _, ld := range m.devices {
		out = append(out, toAPIDevice(ld))
	}
	return out
}

// Create builds a new device from req and registers it under a stable
// id derived from its first device node.
func (m *Manager) Create(req apitypes.DeviceCreateRequest) (apitypes.Device, error) {
	if req.Type == nil || *req.Type == "" {
		return apitypes.Device{}, apierror.ErrBadRequest("missing device type")
	}
	reg, ok := registry.GetRegistration(*req.Type)
	if !ok {
		return apitypes.Device{}, apierror.ErrBadRequest(fmt.Sprintf("unknown device type %q", *req.Type))
	}

	opts := &device.CreateOptions{IdVendor: req.IdVendor, IdProduct: req.IdProduct}
	handle, err := reg.CreateDevice(opts, req.DeviceSpecific)
	if err != nil {
		return apitypes.Device{}, apierror.ErrInternal(err.Error())
	}

	nodes := handle.GetNodes()
	idSeed := *req.Type
	if len(nodes) > 0 {
		idSeed = nodes[0]
	}

	ld := &liveDevice{
		id:       stableHash(idSeed),
		clientID: req.ClientID,
		typ:      *req.Type,
		handle:   handle,
		reg:      reg,
	}

	m.mu.Lock()
	m.devices[ld.id] = ld
	m.mu.Unlock()

	return toAPIDevice(ld), nil
}

// Remove closes and forgets the device with the given id.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	ld, ok := m.devices[id]
	if ok {
		delete(m.devices, id)
	}
	m.mu.Unlock()

	if !ok {
		return apierror.ErrNotFound(fmt.Sprintf("device %q not found", id))
	}
	if err := ld.handle.Close(); err != nil {
		return apierror.ErrInternal(err.Error())
	}
	return nil
}

// Operation dispatches a named operation against a live device's
// registration, e.g. a mouse's "move_rel".
func (m *Manager) Operation(id, op string, body map[string]any) (any, error) {
	m.mu.RLock()
	ld, ok := m.devices[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apierror.ErrNotFound(fmt.Sprintf("device %q not found", id))
	}

	fn, ok := ld.reg.Operations()[op]
	if !ok {
		return nil, apierror.ErrBadRequest(fmt.Sprintf("device type %q has no operation %q", ld.typ, op))
	}
	result, err := fn(ld.handle, body)
	if err != nil {
		return nil, apierror.ErrInternal(err.Error())
	}
	return result, nil
}

// CloseAll tears down every live device, e.g. on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	devices := m.devices
	m.devices = make(map[string]*liveDevice)
	m.mu.Unlock()

	for _, ld := range devices {
		_ = ld.handle.Close()
	}
}
