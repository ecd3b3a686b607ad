// Package pentablet implements an absolute pen/stylus tablet: tool-class
// keys, three stylus buttons, and position/pressure/distance/tilt axes.
package pentablet

import (
	"math"
	"sync"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

const (
	virtualWidth  = 1920
	virtualHeight = 1080
	pressureMax   = 1023
	distanceMax   = 255
	tiltResolution = 57 // units per radian, applied after the degree-to-radian conversion below
)

// Tool identifies the stylus "nib" currently in proximity. SameAsBefore
// is the sentinel meaning "don't change the active tool".
type Tool int

const (
	SameAsBefore Tool = iota
	ToolPen
	ToolRubber
	ToolBrush
	ToolPencil
	ToolAirbrush
)

var toolKeys = map[Tool]uint16{
	ToolPen:      evdevcodes.BtnToolPen,
	ToolRubber:   evdevcodes.BtnToolRubber,
	ToolBrush:    evdevcodes.BtnToolBrush,
	ToolPencil:   evdevcodes.BtnToolPencil,
	ToolAirbrush: evdevcodes.BtnToolAirbrush,
}

// StylusButton identifies one of the tablet's three side buttons.
type StylusButton int

const (
	StylusButton1 StylusButton = iota
	StylusButton2
	StylusButton3
)

var stylusButtonCodes = map[StylusButton]uint16{
	StylusButton1: evdevcodes.BtnStylus,
	StylusButton2: evdevcodes.BtnStylus2,
	StylusButton3: evdevcodes.BtnStylus3,
}

var defaultDefinition = device.Definition{
	Name:    "vhid Pen Tablet",
	Bus:     evdevcodes.BusVirtual,
	Vendor:  0x4653,
	Product: 0x0006,
	Version: 0x0100,
	Phys:    "vhid/pentablet0",
}

// sink is the subset of *evdev.Sink the Device depends on, narrowed so
// tests can exercise tool/axis logic against a fake.
type sink interface {
	Emit(evType, code uint16, value int32) error
	Frame() error
	GetNodes() []string
	Close() error
}

// Device is an evdev pen tablet.
type Device struct {
	sink sink

	mu       sync.Mutex
	lastTool Tool
}

// New creates the evdev pen tablet device.
func New(o *device.CreateOptions) (*Device, error) {
	def := o.Apply(defaultDefinition)

	keys := []uint16{
		evdevcodes.BtnToolPen, evdevcodes.BtnToolRubber, evdevcodes.BtnToolBrush,
		evdevcodes.BtnToolPencil, evdevcodes.BtnToolAirbrush, evdevcodes.BtnTouch,
		evdevcodes.BtnStylus, evdevcodes.BtnStylus2, evdevcodes.BtnStylus3,
	}
	axes := []evdev.AbsAxis{
		{Code: evdevcodes.AbsX, Min: 0, Max: virtualWidth},
		{Code: evdevcodes.AbsY, Min: 0, Max: virtualHeight},
		{Code: evdevcodes.AbsPressure, Min: 0, Max: pressureMax},
		{Code: evdevcodes.AbsDistance, Min: 0, Max: distanceMax},
		{Code: evdevcodes.AbsTiltX, Min: -90, Max: 90, Resolution: tiltResolution},
		{Code: evdevcodes.AbsTiltY, Min: -90, Max: 90, Resolution: tiltResolution},
	}

	s, err := evdev.Create(def, evdev.Bits{Keys: keys}, axes, nil)
	if err != nil {
		return nil, err
	}
	return &Device{sink: s, lastTool: SameAsBefore}, nil
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

func clampTilt(deg float64) float64 {
	if deg < -90 {
		return -90
	}
	if deg > 90 {
		return 90
	}
	return deg
}

// tiltUnits converts a clamped tilt angle in degrees to the device's
// units-per-radian resolution, per spec.md §4.6: value * resolution * pi / 180.
func tiltUnits(deg float64) int32 {
	return int32(deg * tiltResolution * math.Pi / 180)
}

// PlaceTool reports the stylus's current pose. x/y are normalized
// [0, 1]; p (pressure) and d (distance) are normalized [0, 1], with a
// negative value meaning "discard this axis" — callers report pressure
// or distance, never both. tx/ty are tilt degrees in [-90, 90].
func (dv *Device) PlaceTool(kind Tool, x, y, p, d, tx, ty float64) error {
	dv.mu.Lock()
	defer dv.mu.Unlock()

	if kind != SameAsBefore && kind != dv.lastTool {
		if prevCode, ok := toolKeys[dv.lastTool]; ok {
			if err := dv.sink.Emit(evdevcodes.EvKey, prevCode, 0); err != nil {
				return err
			}
		}
		if newCode, ok := toolKeys[kind]; ok {
			if err := dv.sink.Emit(evdevcodes.EvKey, newCode, 1); err != nil {
				return err
			}
		}
		dv.lastTool = kind
	}

	vx := scale(x, virtualWidth)
	vy := scale(y, virtualHeight)
	if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsX, vx); err != nil {
		return err
	}
	if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsY, vy); err != nil {
		return err
	}

	if p >= 0 {
		if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsPressure, scale(p, pressureMax)); err != nil {
			return err
		}
	}
	if d >= 0 {
		if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsDistance, scale(d, distanceMax)); err != nil {
			return err
		}
	}

	if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsTiltX, tiltUnits(clampTilt(tx))); err != nil {
		return err
	}
	if err := dv.sink.Emit(evdevcodes.EvAbs, evdevcodes.AbsTiltY, tiltUnits(clampTilt(ty))); err != nil {
		return err
	}

	return dv.sink.Frame()
}

// SetButton emits the matching BTN_STYLUS{,2,3}.
func (dv *Device) SetButton(btn StylusButton, pressed bool) error {
	code, ok := stylusButtonCodes[btn]
	if !ok {
		return &device.Error{Op: "pentablet.SetButton", Reason: "unknown stylus button"}
	}
	value := int32(0)
	if pressed {
		value = 1
	}
	if err := dv.sink.Emit(evdevcodes.EvKey, code, value); err != nil {
		return err
	}
	return dv.sink.Frame()
}

// GetNodes returns the tablet's evdev node(s).
func (dv *Device) GetNodes() []string { return dv.sink.GetNodes() }

// Close tears down the evdev device.
func (dv *Device) Close() error { return dv.sink.Close() }
