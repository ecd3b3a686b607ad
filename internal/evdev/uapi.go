//go:build linux

package evdev

import (
	"encoding/binary"

	"github.com/nullsink/vhid/internal/ioctl"
)

// uinputMagic is the ioctl "type" byte ('U') the kernel reserves for
// /dev/uinput requests.
const uinputMagic = 'U'

// ioctl request codes for /dev/uinput, from uapi/linux/uinput.h.
var (
	uiDevCreate  = ioctl.IO(uinputMagic, 1)
	uiDevDestroy = ioctl.IO(uinputMagic, 2)
	uiDevSetup   = ioctl.IOWSize(uinputMagic, 3, uint(80+8+4)) // struct uinput_setup
	uiAbsSetup   = ioctl.IOWSize(uinputMagic, 4, 28)           // struct uinput_abs_setup

	uiSetEvBit   = ioctl.IOWSize(uinputMagic, 100, 4)
	uiSetKeyBit  = ioctl.IOWSize(uinputMagic, 101, 4)
	uiSetRelBit  = ioctl.IOWSize(uinputMagic, 102, 4)
	uiSetAbsBit  = ioctl.IOWSize(uinputMagic, 103, 4)
	uiSetMscBit  = ioctl.IOWSize(uinputMagic, 104, 4)
	uiSetFFBit   = ioctl.IOWSize(uinputMagic, 107, 4)
	uiSetPropBit = ioctl.IOWSize(uinputMagic, 110, 4)

	uiBeginFFUpload = ioctl.IOWSize(uinputMagic, 200, ffUploadSize)
	uiEndFFUpload   = ioctl.IOWSize(uinputMagic, 201, ffUploadSize)
	uiBeginFFErase  = ioctl.IOWSize(uinputMagic, 202, ffEraseSize)
	uiEndFFErase    = ioctl.IOWSize(uinputMagic, 203, ffEraseSize)
)

// inputID mirrors struct input_id (bustype/vendor/product/version).
type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputSetupName is the fixed name buffer size in struct uinput_setup
// (UINPUT_MAX_NAME_SIZE).
const uinputSetupName = 80

// uinputSetup mirrors struct uinput_setup.
type uinputSetup struct {
	ID           inputID
	Name         [uinputSetupName]byte
	FFEffectsMax uint32
}

// inputAbsInfo mirrors struct input_absinfo.
type inputAbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// uinputAbsSetup mirrors struct uinput_abs_setup. The two-byte pad exists
// because input_absinfo's int32 fields force 4-byte alignment, and the
// kernel's struct definition carries the same gap.
type uinputAbsSetup struct {
	Code    uint16
	_       [2]byte
	AbsInfo inputAbsInfo
}

// AbsAxis describes one EV_ABS code this device advertises.
type AbsAxis struct {
	Code       uint16
	Min, Max   int32
	Fuzz, Flat int32
	Resolution int32
}

// ---- force-feedback upload/erase wire structs ----
//
// struct ff_effect's tagged union is sized/aligned to its largest member
// (ff_periodic_effect, which ends in a pointer-sized custom_data field), so
// decoding has to follow the kernel's exact byte offsets rather than a
// reinterpreted Go union. See decode helpers below.

const ffUnionSize = 32

type ffTrigger struct {
	Button   uint16
	Interval uint16
}

type ffReplay struct {
	Length uint16
	Delay  uint16
}

// ffEffect mirrors struct ff_effect up to (and including) the union
// payload, padded for the union's 8-byte pointer alignment.
type ffEffect struct {
	Type      uint16
	ID        int16
	Direction uint16
	Trigger   ffTrigger
	Replay    ffReplay
	_         [2]byte
	Union     [ffUnionSize]byte
}

// ffUploadSize is sizeof(struct uinput_ff_upload): request_id, retval, and
// two ff_effect values (effect, old).
const ffUploadSize = 4 + 4 + 2*effectSize
const effectSize = 2 + 2 + 2 + 4 + 4 + 2 + ffUnionSize // type+id+direction+trigger+replay+pad+union

type uinputFFUpload struct {
	RequestID uint32
	Retval    int32
	Effect    ffEffect
	Old       ffEffect
}

const ffEraseSize = 4 + 4 + 4

type uinputFFErase struct {
	RequestID uint32
	Retval    uint32
	EffectID  uint32
}

// Envelope carries an FF effect's attack/fade ramp.
type Envelope struct {
	AttackLength, AttackLevel uint16
	FadeLength, FadeLevel     uint16
}

func decodeEnvelope(b []byte) Envelope {
	return Envelope{
		AttackLength: binary.LittleEndian.Uint16(b[0:2]),
		AttackLevel:  binary.LittleEndian.Uint16(b[2:4]),
		FadeLength:   binary.LittleEndian.Uint16(b[4:6]),
		FadeLevel:    binary.LittleEndian.Uint16(b[6:8]),
	}
}

// Effect is the decoded, kind-agnostic view of a kernel ff_effect used by
// the FF worker.
type Effect struct {
	Type      uint16
	ID        int16
	Length    uint16
	Delay     uint16
	Envelope  Envelope
	StartWeak, StartStrong uint16 // constant/ramp/rumble interpretation
	EndWeak, EndStrong     uint16 // ramp end magnitudes
}

func decodeEffect(e *ffEffect) Effect {
	eff := Effect{
		Type:   e.Type,
		ID:     e.ID,
		Length: e.Replay.Length,
		Delay:  e.Replay.Delay,
	}

	switch e.Type {
	case ffConstant:
		level := int16(binary.LittleEndian.Uint16(e.Union[0:2]))
		eff.Envelope = decodeEnvelope(e.Union[2:10])
		mag := magnitudeOf(level)
		eff.StartWeak, eff.StartStrong = mag, mag
		eff.EndWeak, eff.EndStrong = mag, mag
	case ffRamp:
		start := int16(binary.LittleEndian.Uint16(e.Union[0:2]))
		end := int16(binary.LittleEndian.Uint16(e.Union[2:4]))
		eff.Envelope = decodeEnvelope(e.Union[4:12])
		eff.StartWeak = magnitudeOf(start)
		eff.StartStrong = magnitudeOf(start)
		eff.EndWeak = magnitudeOf(end)
		eff.EndStrong = magnitudeOf(end)
	case ffPeriodic:
		magnitude := int16(binary.LittleEndian.Uint16(e.Union[4:6]))
		eff.Envelope = decodeEnvelope(e.Union[10:18])
		mag := magnitudeOf(magnitude)
		eff.StartWeak, eff.StartStrong = mag, mag
		eff.EndWeak, eff.EndStrong = mag, mag
	case ffRumble:
		strong := binary.LittleEndian.Uint16(e.Union[0:2])
		weak := binary.LittleEndian.Uint16(e.Union[2:4])
		eff.StartWeak, eff.StartStrong = weak, strong
		eff.EndWeak, eff.EndStrong = weak, strong
	}

	return eff
}

// magnitudeOf rescales a signed 16-bit constant/ramp/periodic level
// ([-0x7FFF, 0x7FFF]) into the unsigned rumble magnitude range used
// uniformly by the FF worker.
func magnitudeOf(level int16) uint16 {
	if level < 0 {
		level = -level
	}
	v := int32(level) * 2
	if v > 0xFFFF {
		v = 0xFFFF
	}
	return uint16(v)
}

const (
	ffConstant = 0x52
	ffRamp     = 0x58
	ffPeriodic = 0x51
	ffRumble   = 0x50
)
