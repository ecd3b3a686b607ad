// Package dualsense emulates a PS5 DualSense controller over /dev/uhid:
// a fixed HID report descriptor, a 64-byte input report built from an
// abstract controller state, feature-report replies keyed by report id,
// and output-report parsing for rumble and lightbar control.
package dualsense

import "github.com/nullsink/vhid/internal/evdevcodes"

const (
	DefaultVID = 0x054C
	DefaultPID = 0x0CE6
)

const (
	ReportIDInput       = 0x01
	ReportIDOutput      = 0x02
	ReportIDCalibration = 0x05
	ReportIDPairingInfo = 0x09
	ReportIDFirmware    = 0x20
)

const (
	InputReportSize  = 64
	OutputReportSize = 48

	CalibrationReportSize = 41
	PairingInfoReportSize = 20
	FirmwareReportSize    = 64
)

// Abstract button bits. The abstract X/A/B/Y naming follows the rest of
// this module's gamepad packages; PackButtons below maps them onto the
// DualSense's SQUARE/CROSS/CIRCLE/TRIANGLE byte layout.
type ButtonMask uint32

const (
	ButtonX ButtonMask = 1 << iota // -> SQUARE
	ButtonA                        // -> CROSS
	ButtonB                        // -> CIRCLE
	ButtonY                        // -> TRIANGLE
	ButtonL1
	ButtonR1
	ButtonL2
	ButtonR2
	ButtonCreate
	ButtonOptions
	ButtonL3
	ButtonR3
	ButtonHome
	ButtonTouchpad
	ButtonMic
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
)

// D-pad hat octants packed into button byte 0's low nibble.
const (
	DpadN       = 0
	DpadNE      = 1
	DpadE       = 2
	DpadSE      = 3
	DpadS       = 4
	DpadSW      = 5
	DpadW       = 6
	DpadNW      = 7
	DpadNeutral = 8
)

// Output report validity-mask bits (self-consistent with this package's
// own OUTPUT handler; not asserted to equal any particular firmware's
// literal bit assignment).
const (
	ValidFlag0MotorOrCompatibleVibration = 1 << 0
	ValidFlag1LightbarEnable             = 1 << 2
	ValidFlag2CompatibleVibration        = 1 << 2
)

// BatteryStatus is the 4-bit status nibble reported alongside charge
// level in the input report's battery byte.
type BatteryStatus uint8

const (
	BatteryDischarging BatteryStatus = iota
	BatteryCharging
	BatteryFull
	BatteryVoltageOrTempOutOfRange
	BatteryTempError
	BatteryChargingError
)

// evdev bus type reused for the uhid identity's Bus field; DualSense
// reports itself as USB even when emulated.
const busType = evdevcodes.BusUSB
