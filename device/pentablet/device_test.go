package pentablet

import (
	"math"
	"testing"

	"github.com/nullsink/vhid/internal/evdevcodes"
	"github.com/stretchr/testify/assert"
)

type recordedEvent struct {
	evType, code uint16
	value        int32
}

type fakeSink struct {
	events []recordedEvent
	framed int
	nodes  []string
	closed bool
}

func (f *fakeSink) Emit(evType, code uint16, value int32) error {
	f.events = append(f.events, recordedEvent{evType, code, value})
	return nil
}
func (f *fakeSink) Frame() error       { f.framed++; return nil }
func (f *fakeSink) GetNodes() []string { return f.nodes }
func (f *fakeSink) Close() error       { f.closed = true; return nil }

func newTestDevice() (*Device, *fakeSink) {
	s := &fakeSink{}
	return &Device{sink: s, lastTool: SameAsBefore}, s
}

func TestScale(t *testing.T) {
	assert.Equal(t, int32(0), scale(-1, pressureMax))
	assert.Equal(t, int32(pressureMax), scale(2, pressureMax))
}

func TestClampTilt(t *testing.T) {
	assert.Equal(t, -90.0, clampTilt(-200))
	assert.Equal(t, 90.0, clampTilt(200))
	assert.Equal(t, 45.0, clampTilt(45))
}

func TestTiltUnits(t *testing.T) {
	assert.Equal(t, int32(0), tiltUnits(0))
	got := tiltUnits(90)
	want := int32(90 * tiltResolution * math.Pi / 180)
	assert.Equal(t, want, got)
}

func TestPlaceToolSwitchesToolOnce(t *testing.T) {
	d, s := newTestDevice()
	assert.NoError(t, d.PlaceTool(ToolPen, 0.5, 0.5, 0.5, -1, 0, 0))
	assert.Equal(t, ToolPen, d.lastTool)
	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvKey, evdevcodes.BtnToolPen, 1})

	s.events = nil
	assert.NoError(t, d.PlaceTool(ToolPen, 0.6, 0.6, 0.5, -1, 0, 0))
	assert.NotContains(t, s.events, recordedEvent{evdevcodes.EvKey, evdevcodes.BtnToolPen, 1})
}

func TestPlaceToolSwitchesBetweenTools(t *testing.T) {
	d, s := newTestDevice()
	assert.NoError(t, d.PlaceTool(ToolPen, 0.5, 0.5, 0.5, -1, 0, 0))
	s.events = nil
	assert.NoError(t, d.PlaceTool(ToolRubber, 0.5, 0.5, 0.5, -1, 0, 0))

	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvKey, evdevcodes.BtnToolPen, 0})
	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvKey, evdevcodes.BtnToolRubber, 1})
	assert.Equal(t, ToolRubber, d.lastTool)
}

func TestPlaceToolSameAsBeforeKeepsCurrentTool(t *testing.T) {
	d, s := newTestDevice()
	assert.NoError(t, d.PlaceTool(ToolBrush, 0.5, 0.5, 0.5, -1, 0, 0))
	s.events = nil
	assert.NoError(t, d.PlaceTool(SameAsBefore, 0.4, 0.4, 0.5, -1, 0, 0))

	assert.Equal(t, ToolBrush, d.lastTool)
	for _, e := range s.events {
		assert.NotEqual(t, uint16(evdevcodes.EvKey), e.evType)
	}
}

func TestPlaceToolNegativePressureOrDistanceIsDiscarded(t *testing.T) {
	d, s := newTestDevice()
	assert.NoError(t, d.PlaceTool(ToolPen, 0.5, 0.5, -1, -1, 0, 0))
	for _, e := range s.events {
		assert.NotEqual(t, uint16(evdevcodes.AbsPressure), e.code)
		assert.NotEqual(t, uint16(evdevcodes.AbsDistance), e.code)
	}
}

func TestSetButtonKnown(t *testing.T) {
	d, s := newTestDevice()
	assert.NoError(t, d.SetButton(StylusButton1, true))
	assert.Equal(t, []recordedEvent{{evdevcodes.EvKey, evdevcodes.BtnStylus, 1}}, s.events)
}

func TestSetButtonUnknown(t *testing.T) {
	d, _ := newTestDevice()
	assert.Error(t, d.SetButton(StylusButton(99), true))
}
