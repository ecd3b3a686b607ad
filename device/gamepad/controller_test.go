package gamepad

import (
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

var testButtonCodes = map[Button]uint16{
	ButtonA:      evdevcodes.BtnSouth,
	ButtonB:      evdevcodes.BtnEast,
	ButtonTL2:    evdevcodes.BtnTL2,
	ButtonTR2:    evdevcodes.BtnTR2,
	ButtonDpadUp: 0, // D-pad never goes through ButtonCodes/BTN_*
}

func newTestController(mode TriggerMode) (*Controller, *fakeSink) {
	s := &fakeSink{}
	return &Controller{sink: s, cfg: Config{ButtonCodes: testButtonCodes, Trigger: mode}}, s
}

func TestDpadAxes(t *testing.T) {
	cases := []struct {
		name       string
		mask       Button
		wantX, wantY int32
	}{
		{"neutral", 0, 0, 0},
		{"up", ButtonDpadUp, 0, -1},
		{"down", ButtonDpadDown, 0, 1},
		{"left", ButtonDpadLeft, -1, 0},
		{"right", ButtonDpadRight, 1, 0},
		{"up+right", ButtonDpadUp | ButtonDpadRight, 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := dpadAxes(tc.mask)
			assert.Equal(t, tc.wantX, x)
			assert.Equal(t, tc.wantY, y)
		})
	}
}

func TestSetPressedButtonsEmitsOnlyChangedBits(t *testing.T) {
	c, s := newTestController(TriggerAnalog)
	assert.NoError(t, c.SetPressedButtons(ButtonA))
	assert.Equal(t, []recordedEvent{{evdevcodes.EvKey, evdevcodes.BtnSouth, 1}}, s.events)

	s.events = nil
	assert.NoError(t, c.SetPressedButtons(ButtonA|ButtonB))
	assert.Equal(t, []recordedEvent{{evdevcodes.EvKey, evdevcodes.BtnEast, 1}}, s.events)

	s.events = nil
	assert.NoError(t, c.SetPressedButtons(0))
	assert.Equal(t, []recordedEvent{
		{evdevcodes.EvKey, evdevcodes.BtnSouth, 0},
		{evdevcodes.EvKey, evdevcodes.BtnEast, 0},
	}, s.events)
}

func TestSetPressedButtonsEmitsDpadHatOnChange(t *testing.T) {
	c, s := newTestController(TriggerAnalog)
	assert.NoError(t, c.SetPressedButtons(ButtonDpadUp))
	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvAbs, evdevcodes.AbsHat0X, 0})
	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvAbs, evdevcodes.AbsHat0Y, -1})
}

func TestAnalogTriggerIgnoresTL2TR2Mask(t *testing.T) {
	c, s := newTestController(TriggerAnalog)
	assert.NoError(t, c.SetPressedButtons(ButtonTL2|ButtonTR2))
	for _, e := range s.events {
		assert.NotEqual(t, evdevcodes.BtnTL2, e.code)
		assert.NotEqual(t, evdevcodes.BtnTR2, e.code)
	}
}

func TestDigitalTriggerEmitsTL2TR2AsButtons(t *testing.T) {
	c, s := newTestController(TriggerDigital)
	assert.NoError(t, c.SetPressedButtons(ButtonTL2))
	assert.Contains(t, s.events, recordedEvent{evdevcodes.EvKey, evdevcodes.BtnTL2, 1})
}

func TestSetStickNegatesY(t *testing.T) {
	c, s := newTestController(TriggerAnalog)
	assert.NoError(t, c.SetStick(StickLeft, 100, 200))
	assert.Equal(t, []recordedEvent{
		{evdevcodes.EvAbs, evdevcodes.AbsX, 100},
		{evdevcodes.EvAbs, evdevcodes.AbsY, -200},
	}, s.events)

	s.events = nil
	assert.NoError(t, c.SetStick(StickRight, -50, -75))
	assert.Equal(t, []recordedEvent{
		{evdevcodes.EvAbs, evdevcodes.AbsRX, -50},
		{evdevcodes.EvAbs, evdevcodes.AbsRY, 75},
	}, s.events)
}

func TestSetAnalogTriggerEmitsOnAnalogDevices(t *testing.T) {
	c, s := newTestController(TriggerAnalog)
	assert.NoError(t, c.SetAnalogTrigger(StickLeft, 128))
	assert.Equal(t, []recordedEvent{{evdevcodes.EvAbs, evdevcodes.AbsZ, 128}}, s.events)

	s.events = nil
	assert.NoError(t, c.SetAnalogTrigger(StickRight, 200))
	assert.Equal(t, []recordedEvent{{evdevcodes.EvAbs, evdevcodes.AbsRZ, 200}}, s.events)
}

func TestSetAnalogTriggerIsNoOpOnDigitalDevices(t *testing.T) {
	c, s := newTestController(TriggerDigital)
	assert.NoError(t, c.SetAnalogTrigger(StickLeft, 128))
	assert.Empty(t, s.events)
}
