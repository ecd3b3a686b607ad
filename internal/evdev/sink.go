//go:build linux

// Package evdev wraps /dev/uinput: creating a kernel evdev device from a
// device definition, writing (type, code, value) event tuples framed by
// SYN_REPORT, and resolving the child /dev/input/event* and /dev/input/js*
// nodes via sysfs.
package evdev

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/jochenvg/go-udev"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/evdevcodes"
	"github.com/nullsink/vhid/internal/ioctl"
	vhidlog "github.com/nullsink/vhid/internal/log"
)

const uinputPath = "/dev/uinput"

// rawLogger receives a hex dump of every input_event written to
// /dev/uinput when SetRawLogger installs a non-nil one (e.g. at trace
// log level); nil by default, meaning no overhead.
var rawLogger vhidlog.RawLogger

// SetRawLogger installs the process-wide raw packet logger used by every
// Sink. Call once at startup before creating devices.
func SetRawLogger(l vhidlog.RawLogger) { rawLogger = l }

// inputEvent mirrors struct input_event with a 64-bit timeval, the layout
// the kernel uses on every 64-bit Linux target.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Bits is the set of event codes this sink should advertise for one event
// type (EV_KEY, EV_REL, EV_MSC, ...). Abs carries the axes (with min/max/
// fuzz/flat/resolution) separately since EV_ABS needs UI_ABS_SETUP too.
type Bits struct {
	Keys  []uint16
	Rel   []uint16
	Msc   []uint16
	Props []uint16
	FF    bool
}

// Sink owns one /dev/uinput-created device node for the lifetime of the
// handle; Close tears the kernel device down.
type Sink struct {
	mu   sync.Mutex
	file *os.File
	fd   uintptr

	logger *slog.Logger
	nodes  []string
}

// Create opens /dev/uinput, registers the requested event bits plus any
// absolute axes, and issues UI_DEV_SETUP/UI_ABS_SETUP/UI_DEV_CREATE to
// bring the device into existence.
func Create(def device.Definition, bits Bits, axes []AbsAxis, logger *slog.Logger) (*Sink, error) {
	f, err := os.OpenFile(uinputPath, os.O_RDWR|os.O_NONBLOCK, 0)
	if err != nil {
		return nil, &device.Error{Op: "evdev.Create", Reason: "open " + uinputPath, Err: err}
	}
	fd := f.Fd()

	if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvSyn); err != nil {
		f.Close()
		return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_SYN)", Err: err}
	}
	if len(bits.Keys) > 0 {
		if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvKey); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_KEY)", Err: err}
		}
		for _, k := range bits.Keys {
			if err := ioctl.Int(fd, uiSetKeyBit, uintptr(k)); err != nil {
				f.Close()
				return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_KEYBIT(%d)", k), Err: err}
			}
		}
	}
	if len(bits.Rel) > 0 {
		if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvRel); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_REL)", Err: err}
		}
		for _, r := range bits.Rel {
			if err := ioctl.Int(fd, uiSetRelBit, uintptr(r)); err != nil {
				f.Close()
				return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_RELBIT(%d)", r), Err: err}
			}
		}
	}
	if len(bits.Msc) > 0 {
		if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvMsc); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_MSC)", Err: err}
		}
		for _, m := range bits.Msc {
			if err := ioctl.Int(fd, uiSetMscBit, uintptr(m)); err != nil {
				f.Close()
				return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_MSCBIT(%d)", m), Err: err}
			}
		}
	}
	for _, p := range bits.Props {
		if err := ioctl.Int(fd, uiSetPropBit, uintptr(p)); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_PROPBIT(%d)", p), Err: err}
		}
	}

	ffEffectsMax := uint32(0)
	if bits.FF {
		if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvFF); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_FF)", Err: err}
		}
		for _, k := range []uint16{evdevcodes.FFConstant, evdevcodes.FFPeriodic, evdevcodes.FFRamp, evdevcodes.FFRumble, evdevcodes.FFGain} {
			if err := ioctl.Int(fd, uiSetFFBit, uintptr(k)); err != nil {
				f.Close()
				return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_FFBIT(%d)", k), Err: err}
			}
		}
		ffEffectsMax = 16
	}

	if len(axes) > 0 {
		if err := ioctl.Int(fd, uiSetEvBit, evdevcodes.EvAbs); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: "UI_SET_EVBIT(EV_ABS)", Err: err}
		}
		for _, a := range axes {
			if err := ioctl.Int(fd, uiSetAbsBit, uintptr(a.Code)); err != nil {
				f.Close()
				return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_SET_ABSBIT(%d)", a.Code), Err: err}
			}
		}
	}

	setup := uinputSetup{
		ID: inputID{
			Bustype: def.Bus,
			Vendor:  def.Vendor,
			Product: def.Product,
			Version: def.Version,
		},
		FFEffectsMax: ffEffectsMax,
	}
	copy(setup.Name[:], def.Name)
	if err := ioctl.Any(fd, uiDevSetup, &setup); err != nil {
		f.Close()
		return nil, &device.Error{Op: "evdev.Create", Reason: "UI_DEV_SETUP", Err: err}
	}

	for _, a := range axes {
		as := uinputAbsSetup{
			Code: a.Code,
			AbsInfo: inputAbsInfo{
				Minimum:    a.Min,
				Maximum:    a.Max,
				Fuzz:       a.Fuzz,
				Flat:       a.Flat,
				Resolution: a.Resolution,
			},
		}
		if err := ioctl.Any(fd, uiAbsSetup, &as); err != nil {
			f.Close()
			return nil, &device.Error{Op: "evdev.Create", Reason: fmt.Sprintf("UI_ABS_SETUP(%d)", a.Code), Err: err}
		}
	}

	if err := ioctl.Int(fd, uiDevCreate, 0); err != nil {
		f.Close()
		return nil, &device.Error{Op: "evdev.Create", Reason: "UI_DEV_CREATE", Err: err}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &Sink{file: f, fd: fd, logger: logger}
	if nodes, err := resolveNodes(fd); err == nil {
		s.nodes = nodes
	} else {
		logger.Warn("evdev sysfs node resolution failed", "error", err)
	}

	return s, nil
}

// Emit appends one (type, code, value) event. Callers must terminate every
// publicly observable state change with Frame.
func (s *Sink) Emit(evType, code uint16, value int32) error {
	ev := inputEvent{Type: evType, Code: code, Value: value}
	return s.write(ev)
}

// Frame writes (EV_SYN, SYN_REPORT, 0), closing the current event batch.
func (s *Sink) Frame() error {
	return s.Emit(evdevcodes.EvSyn, evdevcodes.SynReport, 0)
}

func (s *Sink) write(ev inputEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, unsafe.Sizeof(ev))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(ev.Sec))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(ev.Usec))
	binary.LittleEndian.PutUint16(buf[16:18], ev.Type)
	binary.LittleEndian.PutUint16(buf[18:20], ev.Code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(ev.Value))

	if rawLogger != nil {
		rawLogger.Log(false, buf)
	}

	if _, err := s.file.Write(buf); err != nil {
		s.logger.Warn("evdev write failed", "type", ev.Type, "code", ev.Code, "error", err)
		return &device.Error{Op: "evdev.Emit", Reason: "short write", Err: err}
	}
	return nil
}

// FD returns the raw uinput file descriptor, used by the FF worker to
// poll for upload/erase/activation requests.
func (s *Sink) FD() uintptr { return s.fd }

// GetNodes returns the resolved /dev/input/event* (and /dev/input/js*)
// paths for this device, in stable creation order.
func (s *Sink) GetNodes() []string { return s.nodes }

// Close destroys the kernel device and releases the uinput fd.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = ioctl.Int(s.fd, uiDevDestroy, 0)
	return s.file.Close()
}

// resolveNodes walks sysfs children of the uinput device's sysname to
// find the /dev/input/event* and /dev/input/js* nodes the kernel created,
// in "event* then js*" order.
func resolveNodes(fd uintptr) ([]string, error) {
	sysname, err := sysName(fd)
	if err != nil {
		return nil, err
	}

	u := udev.Udev{}
	dev := u.NewDeviceFromSyspath(filepath.Join("/sys/devices/virtual/input", sysname))
	if dev == nil {
		return nil, fmt.Errorf("evdev: udev device not found for sysname %q", sysname)
	}

	var events, joysticks []string
	e := u.NewEnumerate()
	_ = e.AddMatchParent(dev)
	devs, err := e.Devices()
	if err != nil {
		return nil, err
	}
	for _, child := range devs {
		node := child.Devnode()
		if node == "" {
			continue
		}
		base := filepath.Base(node)
		switch {
		case strings.HasPrefix(base, "event"):
			events = append(events, node)
		case strings.HasPrefix(base, "js"):
			joysticks = append(joysticks, node)
		}
	}
	sort.Strings(events)
	sort.Strings(joysticks)

	return append(events, joysticks...), nil
}

const sysnameBufSize = 256 // generous buffer for UI_GET_SYSNAME

func sysName(fd uintptr) (string, error) {
	buf := make([]byte, sysnameBufSize)
	req := ioctl.IORSize(uinputMagic, 44, uint(len(buf)))
	if err := ioctl.Any(fd, req, &buf[0]); err != nil {
		return "", &device.Error{Op: "evdev.sysName", Reason: "UI_GET_SYSNAME", Err: err}
	}
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		n = len(buf)
	}
	return string(buf[:n]), nil
}
