// Package mouse provides a relative + absolute pointer pair implementing a
// 5-button mouse with high-resolution vertical and horizontal wheels.
package mouse

import (
	"sync"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

// Virtual screen range move_abs scales caller coordinates into, per the
// spec's fixed-range absolute pointer convention.
const (
	virtualWidth  = 19200
	virtualHeight = 12000
)

var buttonCodes = []uint16{
	evdevcodes.BtnLeft,
	evdevcodes.BtnRight,
	evdevcodes.BtnMiddle,
	evdevcodes.BtnSide,
	evdevcodes.BtnExtra,
}

var buttonScan = map[uint16]uint32{
	evdevcodes.BtnLeft:   0x90001,
	evdevcodes.BtnRight:  0x90002,
	evdevcodes.BtnMiddle: 0x90003,
	evdevcodes.BtnSide:   0x90004,
	evdevcodes.BtnExtra:  0x90005,
}

var relDefault = device.Definition{
	Name:    "vhid Relative Mouse",
	Bus:     evdevcodes.BusVirtual,
	Vendor:  0x4653,
	Product: 0x0001,
	Version: 0x0100,
	Phys:    "vhid/mouse/rel0",
}

var absDefault = device.Definition{
	Name:    "vhid Absolute Mouse",
	Bus:     evdevcodes.BusVirtual,
	Vendor:  0x4653,
	Product: 0x0002,
	Version: 0x0100,
	Phys:    "vhid/mouse/abs0",
}

// sink is the subset of *evdev.Sink the Mouse depends on, narrowed so
// tests can exercise button/scroll/scaling logic against a fake.
type sink interface {
	Emit(evType, code uint16, value int32) error
	Frame() error
	GetNodes() []string
	Close() error
}

// Mouse owns a relative-pointer evdev device (buttons, REL_X/Y, wheels)
// and a companion absolute-pointer device used only by move_abs.
type Mouse struct {
	mu  sync.Mutex
	rel sink
	abs sink
}

// New creates both pointer devices. Options are applied identically to
// each, save for the distinguishing product code already baked in.
func New(o *device.CreateOptions) (*Mouse, error) {
	relDef := o.Apply(relDefault)
	absDef := o.Apply(absDefault)
	if o != nil && o.IdProduct != nil {
		// Preserve the rel/abs product-code distinction even when the
		// caller overrides the product id.
		absDef.Product = relDef.Product + 1
	}

	rel, err := evdev.Create(relDef, evdev.Bits{
		Keys: buttonCodes,
		Rel: []uint16{
			evdevcodes.RelX, evdevcodes.RelY,
			evdevcodes.RelWheel, evdevcodes.RelHWheel,
			evdevcodes.RelWheelHiRes, evdevcodes.RelHWheelHiRes,
		},
		Msc: []uint16{evdevcodes.MscScan},
	}, nil, nil)
	if err != nil {
		return nil, err
	}

	abs, err := evdev.Create(absDef, evdev.Bits{}, []evdev.AbsAxis{
		{Code: evdevcodes.AbsX, Min: 0, Max: virtualWidth},
		{Code: evdevcodes.AbsY, Min: 0, Max: virtualHeight},
	}, nil)
	if err != nil {
		rel.Close()
		return nil, err
	}

	return &Mouse{rel: rel, abs: abs}, nil
}

// MoveRel emits a relative cursor delta.
func (m *Mouse) MoveRel(dx, dy int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dx != 0 {
		if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelX, dx); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelY, dy); err != nil {
			return err
		}
	}
	return m.rel.Frame()
}

// scaleAbs rescales (x, y) from the caller's (sw, sh) screen space into
// the fixed virtual range MoveAbs reports on.
func scaleAbs(x, y, sw, sh int32) (vx, vy int32) {
	vx = int32(int64(x) * virtualWidth / int64(sw))
	vy = int32(int64(y) * virtualHeight / int64(sh))
	return vx, vy
}

// MoveAbs scales (x, y) from the caller's (sw, sh) screen space into the
// fixed virtual range and emits it on the absolute-pointer device.
func (m *Mouse) MoveAbs(x, y, sw, sh int32) error {
	if sw <= 0 || sh <= 0 {
		return &device.Error{Op: "mouse.MoveAbs", Reason: "sw/sh must be positive"}
	}
	vx, vy := scaleAbs(x, y, sw, sh)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.abs.Emit(evdevcodes.EvAbs, evdevcodes.AbsX, vx); err != nil {
		return err
	}
	if err := m.abs.Emit(evdevcodes.EvAbs, evdevcodes.AbsY, vy); err != nil {
		return err
	}
	return m.abs.Frame()
}

// Press emits MSC_SCAN followed by the matching BTN_* key-down.
func (m *Mouse) Press(button uint16) error { return m.setButton(button, 1) }

// Release emits MSC_SCAN followed by the matching BTN_* key-up.
func (m *Mouse) Release(button uint16) error { return m.setButton(button, 0) }

func (m *Mouse) setButton(button uint16, value int32) error {
	scan, ok := buttonScan[button]
	if !ok {
		return &device.Error{Op: "mouse.setButton", Reason: "unknown button"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.rel.Emit(evdevcodes.EvMsc, evdevcodes.MscScan, int32(scan)); err != nil {
		return err
	}
	if err := m.rel.Emit(evdevcodes.EvKey, button, value); err != nil {
		return err
	}
	return m.rel.Frame()
}

// VerticalScroll emits REL_WHEEL = hiRes/120 and REL_WHEEL_HI_RES = hiRes.
func (m *Mouse) VerticalScroll(hiRes int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelWheel, hiRes/120); err != nil {
		return err
	}
	if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelWheelHiRes, hiRes); err != nil {
		return err
	}
	return m.rel.Frame()
}

// HorizontalScroll emits REL_HWHEEL = hiRes/120 and REL_HWHEEL_HI_RES = hiRes.
func (m *Mouse) HorizontalScroll(hiRes int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelHWheel, hiRes/120); err != nil {
		return err
	}
	if err := m.rel.Emit(evdevcodes.EvRel, evdevcodes.RelHWheelHiRes, hiRes); err != nil {
		return err
	}
	return m.rel.Frame()
}

// GetNodes returns the relative device's nodes followed by the absolute
// device's nodes.
func (m *Mouse) GetNodes() []string {
	return append(append([]string{}, m.rel.GetNodes()...), m.abs.GetNodes()...)
}

// Close tears down both pointer devices.
func (m *Mouse) Close() error {
	errRel := m.rel.Close()
	errAbs := m.abs.Close()
	if errRel != nil {
		return errRel
	}
	return errAbs
}
