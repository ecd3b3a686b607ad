// Package keyboard provides an evdev keyboard with software auto-repeat,
// since uinput-originated keys are never repeated by the kernel itself.
package keyboard

import (
	"sort"
	"sync"
	"time"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdev"
	"github.com/nullsink/vhid/internal/evdevcodes"
)

const defaultRepeatInterval = 50 * time.Millisecond

var defaultDefinition = device.Definition{
	Name:    "vhid Keyboard",
	Bus:     evdevcodes.BusVirtual,
	Vendor:  0x4653,
	Product: 0x0003,
	Version: 0x0100,
	Phys:    "vhid/keyboard0",
}

// sink is the subset of *evdev.Sink Keyboard depends on, narrowed so
// tests can exercise press/release/repeat logic against a fake.
type sink interface {
	Emit(evType, code uint16, value int32) error
	Frame() error
	GetNodes() []string
	Close() error
}

// Keyboard is an evdev keyboard device with a background repeat ticker
// that re-emits press for every currently-held key.
type Keyboard struct {
	sink sink

	mu   sync.Mutex
	held map[int]keyMapping

	repeatInterval time.Duration
	stop           chan struct{}
	done           chan struct{}
}

// Options carries keyboard-specific construction parameters on top of the
// common device.CreateOptions.
type Options struct {
	Create         *device.CreateOptions
	RepeatInterval time.Duration
}

// New creates the evdev keyboard and starts its auto-repeat ticker.
func New(o *Options) (*Keyboard, error) {
	var create *device.CreateOptions
	interval := defaultRepeatInterval
	if o != nil {
		create = o.Create
		if o.RepeatInterval > 0 {
			interval = o.RepeatInterval
		}
	}
	def := create.Apply(defaultDefinition)

	keys := make([]uint16, 0, len(vkTable))
	seen := make(map[uint16]bool)
	for _, m := range vkTable {
		if !seen[m.linux] {
			seen[m.linux] = true
			keys = append(keys, m.linux)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	s, err := evdev.Create(def, evdev.Bits{Keys: keys, Msc: []uint16{evdevcodes.MscScan}}, nil, nil)
	if err != nil {
		return nil, err
	}

	k := &Keyboard{
		sink:           s,
		held:           make(map[int]keyMapping),
		repeatInterval: interval,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	go k.repeatLoop()
	return k, nil
}

// Press emits the scan code and key-down for vk's mapped Linux key, then
// adds vk to the held-keys list for auto-repeat. Unknown VKs are dropped.
func (k *Keyboard) Press(vk int) error {
	m, ok := vkTable[vk]
	if !ok {
		return nil
	}
	k.mu.Lock()
	k.held[vk] = m
	k.mu.Unlock()
	return k.emit(m, 1)
}

// Release removes vk from the held list and emits scan code + key-up.
func (k *Keyboard) Release(vk int) error {
	m, ok := vkTable[vk]
	if !ok {
		return nil
	}
	k.mu.Lock()
	delete(k.held, vk)
	k.mu.Unlock()
	return k.emit(m, 0)
}

func (k *Keyboard) emit(m keyMapping, value int32) error {
	if err := k.sink.Emit(evdevcodes.EvMsc, evdevcodes.MscScan, int32(m.scan)); err != nil {
		return err
	}
	if err := k.sink.Emit(evdevcodes.EvKey, m.linux, value); err != nil {
		return err
	}
	return k.sink.Frame()
}

func (k *Keyboard) repeatLoop() {
	defer close(k.done)
	ticker := time.NewTicker(k.repeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-k.stop:
			return
		case <-ticker.C:
			k.mu.Lock()
			held := make([]keyMapping, 0, len(k.held))
			for _, m := range k.held {
				held = append(held, m)
			}
			k.mu.Unlock()

			for _, m := range held {
				_ = k.emit(m, 1)
			}
		}
	}
}

// GetNodes returns the keyboard's evdev node(s).
func (k *Keyboard) GetNodes() []string { return k.sink.GetNodes() }

// Close stops the repeat ticker and tears down the evdev device.
func (k *Keyboard) Close() error {
	close(k.stop)
	<-k.done
	return k.sink.Close()
}
