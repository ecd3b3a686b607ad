package dualsense

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/uhid"
)

// Calibration denominators used to convert an abstract gyro rate
// (degrees/sample) into the raw fixed-point units the input report
// carries. The CALIBRATION feature report does not advertise them:
// buildCalibrationReport returns only the report id, with every
// calibration byte left zero.
const (
	gyroSensNumer  = 1000
	gyroPitchDenom = 1
	gyroYawDenom   = 1
	gyroRollDenom  = 1

	accelG = 9.80665
)

// State is the abstract controller pose the device packs into an input
// report on every change.
type State struct {
	LX, LY, RX, RY int16 // [-32768, 32767]
	L2, R2         uint8 // [0, 255]
	Buttons        ButtonMask

	// Gyro in degrees-per-sample; Accel in g (converted via accelG).
	GyroX, GyroY, GyroZ    float64
	AccelX, AccelY, AccelZ float64

	TouchpadActive bool
	TouchX, TouchY uint16 // 12-bit touch coordinates

	BatteryLevel  uint8 // [0, 10]
	BatteryStatus BatteryStatus
}

// RumbleFunc receives the rescaled [0, 0xFFFF] motor magnitudes from an
// OUTPUT report.
type RumbleFunc func(left, right uint16)

// LEDFunc receives the raw lightbar RGB triplet from an OUTPUT report.
type LEDFunc func(red, green, blue byte)

// Device is a PS5 DualSense emulated over /dev/uhid.
type Device struct {
	transport *uhid.Device

	mu    sync.Mutex
	state State
	seq   uint8

	onRumble RumbleFunc
	onLED    LEDFunc
}

func defaultDefinition(o *device.CreateOptions) device.Definition {
	def := device.Definition{
		Name:             "DualSense Wireless Controller",
		Bus:              busType,
		Vendor:           DefaultVID,
		Product:          DefaultPID,
		Version:          0x0100,
		Phys:             "vhid/dualsense0",
		ReportDescriptor: buildReportDescriptor(),
	}
	return o.Apply(def)
}

// New creates the UHID device and installs its report-request handlers.
func New(o *device.CreateOptions) (*Device, error) {
	def := defaultDefinition(o)

	d := &Device{state: State{BatteryLevel: 10, BatteryStatus: BatteryFull}}

	t, err := uhid.Create(def, nil)
	if err != nil {
		return nil, err
	}
	d.transport = t
	t.SetHandlers(d.handleGetReport, d.handleOutput, nil)
	t.SetStartHandler(d.resync)

	return d, nil
}

// resync resends the current input report, per spec.md §4.8's "any
// UHID_START ... re-sync the host" requirement.
func (d *Device) resync() {
	d.mu.Lock()
	report := d.buildInputReportLocked()
	d.mu.Unlock()
	_ = d.transport.Input2(report)
}

// SetRumbleCallback installs the OUTPUT-report rumble callback.
func (d *Device) SetRumbleCallback(f RumbleFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onRumble = f
}

// SetLEDCallback installs the OUTPUT-report lightbar callback.
func (d *Device) SetLEDCallback(f LEDFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onLED = f
}

// UpdateState replaces the controller pose and sends a fresh input
// report.
func (d *Device) UpdateState(s State) error {
	d.mu.Lock()
	d.state = s
	report := d.buildInputReportLocked()
	d.mu.Unlock()
	return d.transport.Input2(report)
}

func dpadOctant(m ButtonMask) byte {
	up := m&ButtonDpadUp != 0
	down := m&ButtonDpadDown != 0
	left := m&ButtonDpadLeft != 0
	right := m&ButtonDpadRight != 0

	switch {
	case up && right:
		return DpadNE
	case down && right:
		return DpadSE
	case down && left:
		return DpadSW
	case up && left:
		return DpadNW
	case up:
		return DpadN
	case right:
		return DpadE
	case down:
		return DpadS
	case left:
		return DpadW
	default:
		return DpadNeutral
	}
}

// PackButtons encodes the abstract button mask into the 4-byte button
// block: byte0 low nibble = D-pad octant, byte0 high nibble = face
// buttons, byte1 = shoulders/sticks/menu, byte2 = home/touchpad/mic.
func PackButtons(m ButtonMask) [4]byte {
	var b [4]byte
	b[0] = dpadOctant(m)
	if m&ButtonX != 0 {
		b[0] |= 1 << 4
	}
	if m&ButtonA != 0 {
		b[0] |= 1 << 5
	}
	if m&ButtonB != 0 {
		b[0] |= 1 << 6
	}
	if m&ButtonY != 0 {
		b[0] |= 1 << 7
	}

	if m&ButtonL1 != 0 {
		b[1] |= 1 << 0
	}
	if m&ButtonR1 != 0 {
		b[1] |= 1 << 1
	}
	if m&ButtonL2 != 0 {
		b[1] |= 1 << 2
	}
	if m&ButtonR2 != 0 {
		b[1] |= 1 << 3
	}
	if m&ButtonCreate != 0 {
		b[1] |= 1 << 4
	}
	if m&ButtonOptions != 0 {
		b[1] |= 1 << 5
	}
	if m&ButtonL3 != 0 {
		b[1] |= 1 << 6
	}
	if m&ButtonR3 != 0 {
		b[1] |= 1 << 7
	}

	if m&ButtonHome != 0 {
		b[2] |= 1 << 0
	}
	if m&ButtonTouchpad != 0 {
		b[2] |= 1 << 1
	}
	if m&ButtonMic != 0 {
		b[2] |= 1 << 2
	}

	return b
}

func stickToByte(v int16) byte {
	return byte((int32(v) + 32768) >> 8)
}

func gyroRaw(dps, denom float64) int16 {
	v := dps * gyroSensNumer / denom
	return clampI16(v)
}

func accelRaw(g float64) int16 {
	return clampI16(g * accelG * 100)
}

func clampI16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// buildInputReportLocked packs the current state into the 64-byte input
// report, including its leading report-id byte. Field offsets mirror the
// real DualSense input report exactly (report_id=0, LS=1-2, RS=3-4,
// L2/R2=5-6, seq=7, buttons=8-11, reserved=12-15, gyro=16-21,
// accel=22-27, sensor_timestamp=28-31, reserved2=32, touch=33-40,
// battery=53) so a real host parses it identically to a physical pad.
// Caller holds d.mu.
func (d *Device) buildInputReportLocked() []byte {
	r := make([]byte, InputReportSize)
	r[0] = ReportIDInput
	r[1] = stickToByte(d.state.LX)
	r[2] = stickToByte(d.state.LY)
	r[3] = stickToByte(d.state.RX)
	r[4] = stickToByte(d.state.RY)
	r[5] = d.state.L2
	r[6] = d.state.R2

	d.seq++
	r[7] = d.seq

	buttons := PackButtons(d.state.Buttons)
	copy(r[8:12], buttons[:])
	// r[12:16] is reserved, left zeroed.

	binary.LittleEndian.PutUint16(r[16:18], uint16(gyroRaw(d.state.GyroX, gyroPitchDenom)))
	binary.LittleEndian.PutUint16(r[18:20], uint16(gyroRaw(d.state.GyroY, gyroYawDenom)))
	binary.LittleEndian.PutUint16(r[20:22], uint16(gyroRaw(d.state.GyroZ, gyroRollDenom)))

	binary.LittleEndian.PutUint16(r[22:24], uint16(accelRaw(d.state.AccelX)))
	binary.LittleEndian.PutUint16(r[24:26], uint16(accelRaw(d.state.AccelY)))
	binary.LittleEndian.PutUint16(r[26:28], uint16(accelRaw(d.state.AccelZ)))

	binary.LittleEndian.PutUint32(r[28:32], sensorTimestamp())
	// r[32] is reserved, left zeroed.

	if d.state.TouchpadActive {
		r[33] = 0x80
	}
	x := d.state.TouchX & 0x0FFF
	y := d.state.TouchY & 0x0FFF
	r[34] = byte(x)
	r[35] = byte(x>>8) | byte(y<<4)
	r[36] = byte(y >> 4)

	r[53] = (byte(d.state.BatteryStatus) << 4) | (d.state.BatteryLevel & 0x0F)

	return r
}

func (d *Device) handleGetReport(reportNum uint8, rtype uhid.ReportType) ([]byte, uint16) {
	switch reportNum {
	case ReportIDCalibration:
		return buildCalibrationReport(), 0
	case ReportIDPairingInfo:
		return buildPairingInfoReport(), 0
	case ReportIDFirmware:
		return buildFirmwareReport(), 0
	default:
		return nil, 0xFFEA // -EINVAL (-22) in the reply's unsigned 16-bit err field
	}
}

func (d *Device) handleOutput(data []byte, rtype uhid.ReportType) {
	if len(data) < OutputReportSize || data[0] != ReportIDOutput {
		return
	}
	valid0 := data[1]
	valid1 := data[2]
	valid2 := data[5]

	if valid0&ValidFlag0MotorOrCompatibleVibration != 0 || valid2&ValidFlag2CompatibleVibration != 0 {
		// Output report offsets: motor_right=3, motor_left=4.
		right := rescale255To16(data[3])
		left := rescale255To16(data[4])
		d.mu.Lock()
		fn := d.onRumble
		d.mu.Unlock()
		if fn != nil {
			fn(left, right)
		}
	}

	if valid1&ValidFlag1LightbarEnable != 0 {
		d.mu.Lock()
		fn := d.onLED
		d.mu.Unlock()
		if fn != nil {
			fn(data[6], data[7], data[8])
		}
	}
}

func rescale255To16(v byte) uint16 {
	return uint16(uint32(v) * 0xFFFF / 0xFF)
}

func buildCalibrationReport() []byte {
	b := make([]byte, CalibrationReportSize)
	b[0] = ReportIDCalibration
	return b
}

func buildPairingInfoReport() []byte {
	b := make([]byte, PairingInfoReportSize)
	b[0] = ReportIDPairingInfo
	return b
}

func buildFirmwareReport() []byte {
	b := make([]byte, FirmwareReportSize)
	b[0] = ReportIDFirmware
	return b
}

// GetNodes always returns nil: UHID devices are resolved through the
// kernel's HID/input subsystem, not a single predictable uinput sysname,
// and no node paths are looked up for them.
func (d *Device) GetNodes() []string { return nil }

// Close destroys the UHID device.
func (d *Device) Close() error { return d.transport.Close() }
