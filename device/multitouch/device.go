// Package multitouch implements the MT protocol B trackpad and
// touchscreen devices: both share a slot-based finger tracker and differ
// only in INPUT_PROP_BUTTONPAD/BTN_LEFT support.
package multitouch

import (
	"sync"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

const (
	maxSlots = 5

	virtualWidth  = 1920
	virtualHeight = 1080
	pressureMax   = 255
)

// toolClassKeys is the count→key table: 1 finger→FINGER, 2→DOUBLETAP, ...
var toolClassKeys = [...]uint16{
	0, // unused: zero fingers has no tool key
	evdevcodes.BtnToolFinger,
	evdevcodes.BtnToolDoubleTap,
	evdevcodes.BtnToolTripleTap,
	evdevcodes.BtnToolQuadTap,
	evdevcodes.BtnToolQuintTap,
}

// Kind distinguishes a trackpad (has BTN_LEFT + INPUT_PROP_BUTTONPAD)
// from a touchscreen (neither).
type Kind int

const (
	Trackpad Kind = iota
	Touchscreen
)

// sink is the subset of *evdev.Sink the Device depends on, narrowed so
// tests can exercise slot-tracking logic against a fake.
type sink interface {
	Emit(evType, code uint16, value int32) error
	Frame() error
	GetNodes() []string
	Close() error
}

// Device is a slot-based multitouch input: a trackpad or touchscreen.
type Device struct {
	sink sink
	kind Kind

	mu         sync.Mutex
	slotOf     map[int]int // finger id -> slot
	currentSlot int
	fingerOrder []int // slot index -> finger id, -1 if free
}

func defaultDefinition(kind Kind) device.Definition {
	if kind == Trackpad {
		return device.Definition{
			Name:    "vhid Trackpad",
			Bus:     evdevcodes.BusVirtual,
			Vendor:  0x4653,
			Product: 0x0004,
			Version: 0x0100,
			Phys:    "vhid/trackpad0",
		}
	}
	return device.Definition{
		Name:    "vhid Touchscreen",
		Bus:     evdevcodes.BusVirtual,
		Vendor:  0x4653,
		Product: 0x0005,
		Version: 0x0100,
		Phys:    "vhid/touchscreen0",
	}
}

// New creates a trackpad (kind == Trackpad) or touchscreen device.
func New(kind Kind, o *device.CreateOptions) (*Device, error) {
	def := o.Apply(defaultDefinition(kind))

	keys := []uint16{
		evdevcodes.BtnTouch,
		evdevcodes.BtnToolFinger,
		evdevcodes.BtnToolDoubleTap,
		evdevcodes.BtnToolTripleTap,
		evdevcodes.BtnToolQuadTap,
		evdevcodes.BtnToolQuintTap,
	}
	var props []uint16
	if kind == Trackpad {
		keys = append(keys, evdevcodes.BtnLeft)
		props = []uint16{evdevcodes.InputPropButtonpad}
	}

	axes := []evdev.AbsAxis{
		{Code: evdevcodes.AbsX, Min: 0, Max: virtualWidth},
		{Code: evdevcodes.AbsY, Min: 0, Max: virtualHeight},
		{Code: evdevcodes.AbsPressure, Min: 0, Max: pressureMax},
		{Code: evdevcodes.AbsMTSlot, Min: 0, Max: maxSlots - 1},
		{Code: evdevcodes.AbsMTTrackingID, Min: -1, Max: 65535},
		{Code: evdevcodes.AbsMTPositionX, Min: 0, Max: virtualWidth},
		{Code: evdevcodes.AbsMTPositionY, Min: 0, Max: virtualHeight},
		{Code: evdevcodes.AbsMTPressure, Min: 0, Max: pressureMax},
		{Code: evdevcodes.AbsMTOrientation, Min: -90, Max: 90},
	}

	s, err := evdev.Create(def, evdev.Bits{Keys: keys, Props: props}, axes, nil)
	if err != nil {
		return nil, err
	}

	order := make([]int, maxSlots)
	for i := range order {
		order[i] = -1
	}

	return &Device{
		sink:        s,
		kind:        kind,
		slotOf:      make(map[int]int),
		currentSlot: -1,
		fingerOrder: order,
	}, nil
}

func scale(v float64, max int32) int32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int32(v * float64(max))
}

// fingerCount returns the number of currently tracked fingers.
func (d *Device) fingerCount() int {
	n := 0
	for _, id := range d.fingerOrder {
		if id != -1 {
			n++
		}
	}
	return n
}

func (d *Device) switchToolClass(oldCount, newCount int) error {
	if oldCount == newCount {
		return nil
	}
	if oldCount > 0 && oldCount <= maxSlots {
		if err := d.sink.Emit(evdevcodes.EvKey, toolClassKeys[oldCount], 0); err != nil {
			return err
		}
	}
	if newCount > 0 && newCount <= maxSlots {
		if err := d.sink.Emit(evdevcodes.EvKey, toolClassKeys[newCount], 1); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) switchSlot(slot int) error {
	if d.currentSlot == slot {
		return nil
	}
	d.currentSlot = slot
	return d.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsMTSlot, int32(slot))
}

// PlaceFinger creates or updates a tracked finger at normalized (x, y),
// pressure and orientation, per spec.md §4.5.
func (d *Device) PlaceFinger(fingerID int, x, y, pressure, orientation float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	slot, known := d.slotOf[fingerID]
	if !known {
		free := -1
		for i, id := range d.fingerOrder {
			if id == -1 {
				free = i
				break
			}
		}
		if free == -1 {
			return &device.Error{Op: "multitouch.PlaceFinger", Reason: "no free slot"}
		}

		oldCount := d.fingerCount()
		slot = free
		d.fingerOrder[slot] = fingerID
		d.slotOf[fingerID] = slot

		if err := d.switchSlot(slot); err != nil {
			return err
		}
		if err := d.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsMTTrackingID, int32(slot)); err != nil {
			return err
		}
		if err := d.switchToolClass(oldCount, d.fingerCount()); err != nil {
			return err
		}
	} else if err := d.switchSlot(slot); err != nil {
		return err
	}

	vx := scale(x, virtualWidth)
	vy := scale(y, virtualHeight)
	vp := scale(pressure, pressureMax)
	vo := int32(orientation)
	if vo < -90 {
		vo = -90
	}
	if vo > 90 {
		vo = 90
	}

	for _, e := range []struct {
		code  uint16
		value int32
	}{
		{evdevcodes.AbsX, vx},
		{evdevcodes.AbsY, vy},
		{evdevcodes.AbsMTPositionX, vx},
		{evdevcodes.AbsMTPositionY, vy},
		{evdevcodes.AbsPressure, vp},
		{evdevcodes.AbsMTPressure, vp},
		{evdevcodes.AbsMTOrientation, vo},
	} {
		if err := d.sink.Emit(evdevcodes.EvAbs, e.code, e.value); err != nil {
			return err
		}
	}

	return d.sink.Frame()
}

// ReleaseFinger drops a tracked finger, releasing its slot and updating
// the tool-class key for the new finger count.
func (d *Device) ReleaseFinger(fingerID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	slot, ok := d.slotOf[fingerID]
	if !ok {
		return nil
	}
	if err := d.switchSlot(slot); err != nil {
		return err
	}
	if err := d.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsMTTrackingID, -1); err != nil {
		return err
	}

	oldCount := d.fingerCount()
	d.fingerOrder[slot] = -1
	delete(d.slotOf, fingerID)

	if err := d.switchToolClass(oldCount, d.fingerCount()); err != nil {
		return err
	}

	return d.sink.Frame()
}

// SetLeftButton emits BTN_LEFT directly; valid only on trackpads.
func (d *Device) SetLeftButton(pressed bool) error {
	if d.kind != Trackpad {
		return &device.Error{Op: "multitouch.SetLeftButton", Reason: "not a trackpad"}
	}
	value := int32(0)
	if pressed {
		value = 1
	}
	if err := d.sink.Emit(evdevcodes.EvKey, evdevcodes.BtnLeft, value); err != nil {
		return err
	}
	return d.sink.Frame()
}

// GetNodes returns the device's evdev node(s).
func (d *Device) GetNodes() []string { return d.sink.GetNodes() }

// Close tears down the evdev device.
func (d *Device) Close() error { return d.sink.Close() }
