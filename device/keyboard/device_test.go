package keyboard

import (
	"testing"
	"time"

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

func newTestKeyboard() (*Keyboard, *fakeSink) {
	s := &fakeSink{nodes: []string{"/dev/input/event20"}}
	return &Keyboard{
		sink:           s,
		held:           make(map[int]keyMapping),
		repeatInterval: defaultRepeatInterval,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}, s
}

func TestVkTableKnownKey(t *testing.T) {
	m, ok := vkTable[0x41] // 'A'
	assert.True(t, ok)
	assert.Equal(t, evdevcodes.KeyA, m.linux)
	assert.Equal(t, uint32(0x1e), m.scan)
}

func TestVkTableNoDuplicateLinuxCodesAcrossDistinctVKs(t *testing.T) {
	// Shift/Ctrl/Alt intentionally alias their left/generic VK to the same
	// Linux key as the left-specific VK; everything else must be unique.
	aliased := map[uint16]bool{
		evdevcodes.KeyLeftShift: true,
		evdevcodes.KeyLeftCtrl:  true,
		evdevcodes.KeyLeftAlt:   true,
	}
	seen := map[uint16]int{}
	for vk, m := range vkTable {
		seen[m.linux]++
		_ = vk
	}
	for code, count := range seen {
		if aliased[code] {
			continue
		}
		assert.Equalf(t, 1, count, "linux code %#x mapped from more than one VK", code)
	}
}

func TestPressKnownVK(t *testing.T) {
	k, s := newTestKeyboard()
	assert.NoError(t, k.Press(0x41))
	assert.Equal(t, []recordedEvent{
		{evdevcodes.EvMsc, evdevcodes.MscScan, 0x1e},
		{evdevcodes.EvKey, evdevcodes.KeyA, 1},
	}, s.events)
	_, held := k.held[0x41]
	assert.True(t, held)
}

func TestPressUnknownVKIsSilentNoOp(t *testing.T) {
	k, s := newTestKeyboard()
	assert.NoError(t, k.Press(0xFFFF))
	assert.Empty(t, s.events)
	assert.Empty(t, k.held)
}

func TestReleaseRemovesFromHeld(t *testing.T) {
	k, s := newTestKeyboard()
	assert.NoError(t, k.Press(0x41))
	s.events = nil
	assert.NoError(t, k.Release(0x41))
	assert.Equal(t, []recordedEvent{
		{evdevcodes.EvMsc, evdevcodes.MscScan, 0x1e},
		{evdevcodes.EvKey, evdevcodes.KeyA, 0},
	}, s.events)
	_, held := k.held[0x41]
	assert.False(t, held)
}

func TestRepeatLoopReemitsHeldKeys(t *testing.T) {
	k, s := newTestKeyboard()
	k.repeatInterval = 5 * time.Millisecond
	assert.NoError(t, k.Press(0x41))
	s.events = nil

	go k.repeatLoop()
	time.Sleep(25 * time.Millisecond)
	close(k.stop)
	<-k.done

	assert.NotEmpty(t, s.events)
	for _, ev := range s.events {
		if ev.evType == evdevcodes.EvKey {
			assert.Equal(t, int32(1), ev.value)
		}
	}
}
