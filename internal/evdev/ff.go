//go:build linux

package evdev

import (
	"encoding/binary"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nullsink/vhid/internal/evdevcodes"
	"github.com/nullsink/vhid/internal/ioctl"
)

// activeEffect is a running (or scheduled) force-feedback effect.
type activeEffect struct {
	effect     Effect
	start, end time.Time
}

// FFWorker polls a gamepad's uinput fd for force-feedback upload/erase/
// activation requests, interprets uploaded effects and reports the
// resulting (weak, strong) rumble magnitude pair to a user callback.
type FFWorker struct {
	sink   *Sink
	logger *slog.Logger

	mu       sync.Mutex
	effects  map[int16]Effect
	active   map[int16]activeEffect
	gain     uint16
	rumbleFn func(weak, strong uint16)

	stop chan struct{}
	done chan struct{}
}

// NewFFWorker starts the 20ms polling loop described in spec.md §4.7.
func NewFFWorker(sink *Sink, logger *slog.Logger) *FFWorker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &FFWorker{
		sink:    sink,
		logger:  logger,
		effects: make(map[int16]Effect),
		active:  make(map[int16]activeEffect),
		gain:    0xFFFF,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// SetRumbleCallback installs the callback invoked whenever the computed
// (weak, strong) magnitude pair changes.
func (w *FFWorker) SetRumbleCallback(f func(weak, strong uint16)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rumbleFn = f
}

// Stop signals the worker to exit and waits for it to do so.
func (w *FFWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *FFWorker) run() {
	defer close(w.done)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	var lastWeak, lastStrong uint16
	haveReported := false

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.drainEvents()

			weak, strong, any := w.tick()
			if !any {
				if haveReported && (lastWeak != 0 || lastStrong != 0) {
					w.report(0, 0)
					lastWeak, lastStrong = 0, 0
				}
				continue
			}
			if !haveReported || weak != lastWeak || strong != lastStrong {
				w.report(weak, strong)
				lastWeak, lastStrong = weak, strong
				haveReported = true
			}
		}
	}
}

func (w *FFWorker) report(weak, strong uint16) {
	w.mu.Lock()
	fn := w.rumbleFn
	w.mu.Unlock()
	if fn != nil {
		fn(weak, strong)
	}
}

// drainEvents performs non-blocking reads of the uinput fd, dispatching
// EV_UINPUT (FF_UPLOAD/FF_ERASE) and EV_FF (gain/activation) events.
func (w *FFWorker) drainEvents() {
	buf := make([]byte, 24)
	for {
		n, err := unix.Read(int(w.sink.fd), buf)
		if err != nil || n != len(buf) {
			return
		}
		if rawLogger != nil {
			rawLogger.Log(true, buf)
		}
		evType := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))

		switch evType {
		case evdevcodes.EvUinput:
			switch code {
			case evdevcodes.UIFFUpload:
				w.handleUpload()
			case evdevcodes.UIFFErase:
				w.handleErase()
			}
		case evdevcodes.EvFF:
			if code == evdevcodes.FFGain {
				w.setGain(value)
				continue
			}
			w.handleActivation(int16(code), value)
		}
	}
}

func (w *FFWorker) handleUpload() {
	var up uinputFFUpload
	if err := ioctl.Any(w.sink.fd, uiBeginFFUpload, &up); err != nil {
		w.logger.Warn("UI_BEGIN_FF_UPLOAD failed", "error", err)
		return
	}

	eff := decodeEffect(&up.Effect)
	w.mu.Lock()
	w.effects[eff.ID] = eff
	w.mu.Unlock()

	up.Retval = 0
	if err := ioctl.Any(w.sink.fd, uiEndFFUpload, &up); err != nil {
		w.logger.Warn("UI_END_FF_UPLOAD failed", "error", err)
	}
}

func (w *FFWorker) handleErase() {
	var er uinputFFErase
	if err := ioctl.Any(w.sink.fd, uiBeginFFErase, &er); err != nil {
		w.logger.Warn("UI_BEGIN_FF_ERASE failed", "error", err)
		return
	}

	w.mu.Lock()
	delete(w.effects, int16(er.EffectID))
	delete(w.active, int16(er.EffectID))
	w.mu.Unlock()

	er.Retval = 0
	if err := ioctl.Any(w.sink.fd, uiEndFFErase, &er); err != nil {
		w.logger.Warn("UI_END_FF_ERASE failed", "error", err)
	}
}

func (w *FFWorker) setGain(value int32) {
	g := value
	if g < 0 {
		g = 0
	}
	if g > 0xFFFF {
		g = 0xFFFF
	}
	w.mu.Lock()
	w.gain = uint16(g)
	w.mu.Unlock()
}

func (w *FFWorker) handleActivation(id int16, value int32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if value == 0 {
		delete(w.active, id)
		return
	}
	eff, ok := w.effects[id]
	if !ok {
		return
	}
	now := time.Now()
	start := now.Add(time.Duration(eff.Delay) * time.Millisecond)
	end := start.Add(time.Duration(eff.Length) * time.Millisecond)
	w.active[id] = activeEffect{effect: eff, start: start, end: end}
}

// tick removes expired effects and computes the combined (weak, strong)
// magnitude across all currently-active effects.
func (w *FFWorker) tick() (weak, strong uint16, any bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for id, a := range w.active {
		if !a.end.IsZero() && !now.Before(a.end) {
			delete(w.active, id)
			continue
		}
		if now.Before(a.start) {
			continue
		}

		ew, es := envelopeMagnitude(a, now)
		weak = addClamp(weak, ew)
		strong = addClamp(strong, es)
		any = true
	}

	if any {
		weak = scaleGain(weak, w.gain)
		strong = scaleGain(strong, w.gain)
	}
	return weak, strong, any
}

// envelopeMagnitude computes the instantaneous (weak, strong) magnitude
// for one active effect given the attack/fade envelope. A zero-length
// attack or fade window is treated as "no ramp" rather than dividing by
// zero.
func envelopeMagnitude(a activeEffect, now time.Time) (weak, strong uint16) {
	eff := a.effect
	length := time.Duration(eff.Length) * time.Millisecond
	t := now.Sub(a.start)
	timeLeft := a.end.Sub(now)

	base := func(start, end uint16) uint16 {
		if length <= 0 {
			return end
		}
		frac := float64(t) / float64(length)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		return uint16(float64(start) + (float64(end)-float64(start))*frac)
	}

	weak = base(eff.StartWeak, eff.EndWeak)
	strong = base(eff.StartStrong, eff.EndStrong)

	env := eff.Envelope
	attack := time.Duration(env.AttackLength) * time.Millisecond
	fade := time.Duration(env.FadeLength) * time.Millisecond

	if attack > 0 && t < attack {
		frac := float64(t) / float64(attack)
		weak = uint16(float64(env.AttackLevel) + (float64(weak)-float64(env.AttackLevel))*frac)
		strong = uint16(float64(env.AttackLevel) + (float64(strong)-float64(env.AttackLevel))*frac)
	} else if fade > 0 && timeLeft < fade {
		frac := float64(timeLeft) / float64(fade)
		if frac < 0 {
			frac = 0
		}
		weak = uint16(float64(env.FadeLevel) + (float64(weak)-float64(env.FadeLevel))*frac)
		strong = uint16(float64(env.FadeLevel) + (float64(strong)-float64(env.FadeLevel))*frac)
	}

	return weak, strong
}

func addClamp(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	if sum > 0xFFFF {
		return 0xFFFF
	}
	return uint16(sum)
}

func scaleGain(v, gain uint16) uint16 {
	return uint16(uint32(v) * uint32(gain) / 0xFFFF)
}
