//go:build linux

package evdev

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddClamp(t *testing.T) {
	assert.Equal(t, uint16(300), addClamp(100, 200))
	assert.Equal(t, uint16(0xFFFF), addClamp(0xFFFF, 1), "sum above 0xFFFF clamps instead of wrapping")
	assert.Equal(t, uint16(0xFFFF), addClamp(0x8000, 0x8000))
}

func TestScaleGain(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), scaleGain(0xFFFF, 0xFFFF))
	assert.Equal(t, uint16(0), scaleGain(0xFFFF, 0))
	assert.Equal(t, uint16(0x8000), scaleGain(0xFFFF, 0x8000))
}

func TestMagnitudeOf(t *testing.T) {
	assert.Equal(t, uint16(0), magnitudeOf(0))
	assert.Equal(t, uint16(0xFFFE), magnitudeOf(0x7FFF))
	assert.Equal(t, uint16(0xFFFE), magnitudeOf(-0x7FFF), "negative levels rescale by absolute value")
}

func TestDecodeEnvelope(t *testing.T) {
	b := []byte{0x10, 0x00, 0x20, 0x00, 0x30, 0x00, 0x40, 0x00}
	env := decodeEnvelope(b)
	assert.Equal(t, Envelope{AttackLength: 0x10, AttackLevel: 0x20, FadeLength: 0x30, FadeLevel: 0x40}, env)
}

func TestDecodeEffectRumble(t *testing.T) {
	var e ffEffect
	e.Type = ffRumble
	e.ID = 7
	e.Replay = ffReplay{Length: 500, Delay: 10}
	e.Union[0], e.Union[1] = 0xFF, 0xFF // strong = 0xFFFF
	e.Union[2], e.Union[3] = 0x00, 0x80 // weak = 0x8000

	eff := decodeEffect(&e)
	assert.Equal(t, int16(7), eff.ID)
	assert.EqualValues(t, 500, eff.Length)
	assert.EqualValues(t, 10, eff.Delay)
	assert.Equal(t, uint16(0xFFFF), eff.StartStrong)
	assert.Equal(t, uint16(0x8000), eff.StartWeak)
	assert.Equal(t, eff.StartWeak, eff.EndWeak)
	assert.Equal(t, eff.StartStrong, eff.EndStrong)
}

func TestDecodeEffectConstant(t *testing.T) {
	var e ffEffect
	e.Type = ffConstant
	// level = 0x4000 little-endian
	e.Union[0], e.Union[1] = 0x00, 0x40
	// envelope at union[2:10]
	copy(e.Union[2:10], []byte{1, 0, 2, 0, 3, 0, 4, 0})

	eff := decodeEffect(&e)
	want := magnitudeOf(0x4000)
	assert.Equal(t, want, eff.StartWeak)
	assert.Equal(t, want, eff.StartStrong)
	assert.Equal(t, Envelope{AttackLength: 1, AttackLevel: 2, FadeLength: 3, FadeLevel: 4}, eff.Envelope)
}

func TestDecodeEffectRamp(t *testing.T) {
	var e ffEffect
	e.Type = ffRamp
	e.Union[0], e.Union[1] = 0x00, 0x10 // start = 0x1000
	e.Union[2], e.Union[3] = 0x00, 0x20 // end = 0x2000

	eff := decodeEffect(&e)
	assert.Equal(t, magnitudeOf(0x1000), eff.StartWeak)
	assert.Equal(t, magnitudeOf(0x2000), eff.EndWeak)
}

func TestDecodeEffectPeriodic(t *testing.T) {
	var e ffEffect
	e.Type = ffPeriodic
	e.Union[4], e.Union[5] = 0x00, 0x60 // magnitude = 0x6000

	eff := decodeEffect(&e)
	want := magnitudeOf(0x6000)
	assert.Equal(t, want, eff.StartWeak)
	assert.Equal(t, want, eff.StartStrong)
}

func TestDecodeEffectUnknownTypeYieldsZeroMagnitude(t *testing.T) {
	var e ffEffect
	e.Type = 0xFF
	eff := decodeEffect(&e)
	assert.Equal(t, uint16(0), eff.StartWeak)
	assert.Equal(t, uint16(0), eff.StartStrong)
}

func TestEnvelopeMagnitudeNoEnvelopeReturnsEndValues(t *testing.T) {
	now := time.Now()
	a := activeEffect{
		effect: Effect{Length: 0, StartWeak: 10, StartStrong: 20, EndWeak: 100, EndStrong: 200},
		start:  now.Add(-time.Second),
		end:    now.Add(time.Hour),
	}
	weak, strong := envelopeMagnitude(a, now)
	assert.Equal(t, uint16(100), weak)
	assert.Equal(t, uint16(200), strong)
}

func TestEnvelopeMagnitudeRampsAcrossLength(t *testing.T) {
	now := time.Now()
	start := now.Add(-500 * time.Millisecond)
	a := activeEffect{
		effect: Effect{Length: 1000, StartWeak: 0, StartStrong: 0, EndWeak: 1000, EndStrong: 1000},
		start:  start,
		end:    start.Add(time.Second),
	}
	weak, strong := envelopeMagnitude(a, now)
	// Halfway through a 1000ms ramp from 0 to 1000.
	assert.InDelta(t, 500, weak, 50)
	assert.InDelta(t, 500, strong, 50)
}

func TestEnvelopeMagnitudeAttackRampsFromZero(t *testing.T) {
	now := time.Now()
	start := now.Add(-10 * time.Millisecond)
	a := activeEffect{
		effect: Effect{
			Length: 1000, StartWeak: 1000, StartStrong: 1000, EndWeak: 1000, EndStrong: 1000,
			Envelope: Envelope{AttackLength: 100, AttackLevel: 0},
		},
		start: start,
		end:   start.Add(time.Second),
	}
	weak, _ := envelopeMagnitude(a, now)
	assert.Less(t, weak, uint16(1000), "still inside the attack ramp, magnitude should be below target")
}

func TestTickCombinesActiveEffectsAndAppliesGain(t *testing.T) {
	now := time.Now()
	w := &FFWorker{
		active: map[int16]activeEffect{
			1: {
				effect: Effect{Length: 0, StartWeak: 0x4000, StartStrong: 0x4000, EndWeak: 0x4000, EndStrong: 0x4000},
				start:  now.Add(-time.Second),
				end:    now.Add(time.Hour),
			},
			2: {
				effect: Effect{Length: 0, StartWeak: 0x4000, StartStrong: 0x4000, EndWeak: 0x4000, EndStrong: 0x4000},
				start:  now.Add(-time.Second),
				end:    now.Add(time.Hour),
			},
		},
		gain: 0xFFFF,
	}

	weak, strong, any := w.tick()
	assert.True(t, any)
	assert.Equal(t, uint16(0x8000), weak)
	assert.Equal(t, uint16(0x8000), strong)
}

func TestTickExpiresEffectsPastEnd(t *testing.T) {
	now := time.Now()
	w := &FFWorker{
		active: map[int16]activeEffect{
			1: {
				effect: Effect{EndWeak: 0x4000, EndStrong: 0x4000},
				start:  now.Add(-time.Hour),
				end:    now.Add(-time.Millisecond),
			},
		},
		gain: 0xFFFF,
	}

	_, _, any := w.tick()
	assert.False(t, any)
	assert.Empty(t, w.active, "expired effect must be removed")
}

func TestTickSkipsEffectsBeforeTheirDelay(t *testing.T) {
	now := time.Now()
	w := &FFWorker{
		active: map[int16]activeEffect{
			1: {
				effect: Effect{EndWeak: 0x4000, EndStrong: 0x4000},
				start:  now.Add(time.Hour),
				end:    now.Add(2 * time.Hour),
			},
		},
		gain: 0xFFFF,
	}

	_, _, any := w.tick()
	assert.False(t, any)
}

func TestTickNoActiveEffectsReportsNothing(t *testing.T) {
	w := &FFWorker{active: map[int16]activeEffect{}, gain: 0xFFFF}
	weak, strong, any := w.tick()
	assert.False(t, any)
	assert.Equal(t, uint16(0), weak)
	assert.Equal(t, uint16(0), strong)
}

func TestSetGainClampsToUint16Range(t *testing.T) {
	w := &FFWorker{}
	w.setGain(-5)
	assert.Equal(t, uint16(0), w.gain)
	w.setGain(100000)
	assert.Equal(t, uint16(0xFFFF), w.gain)
	w.setGain(1234)
	assert.Equal(t, uint16(1234), w.gain)
}

func TestHandleActivationAndDeactivation(t *testing.T) {
	w := &FFWorker{
		effects: map[int16]Effect{5: {ID: 5, Length: 100, Delay: 0}},
		active:  map[int16]activeEffect{},
	}
	w.handleActivation(5, 1)
	_, ok := w.active[5]
	assert.True(t, ok)

	w.handleActivation(5, 0)
	_, ok = w.active[5]
	assert.False(t, ok, "value=0 deactivates the effect")
}

func TestHandleActivationUnknownEffectIDIsNoOp(t *testing.T) {
	w := &FFWorker{effects: map[int16]Effect{}, active: map[int16]activeEffect{}}
	w.handleActivation(99, 1)
	assert.Empty(t, w.active)
}
