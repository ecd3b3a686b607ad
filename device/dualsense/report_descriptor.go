package dualsense

import "github.com/nullsink/vhid/internal/hidreport"

// buildReportDescriptor assembles the fixed HID report descriptor: one
// gamepad application collection carrying the 64-byte input report (id
// 1), the 48-byte output report (id 2), and the three feature reports
// GET_REPORT answers by id (calibration, pairing info, firmware info).
func buildReportDescriptor() []byte {
	r := hidreport.Report{Items: []hidreport.Item{
		hidreport.UsagePage{Page: hidreport.UsagePageGenericDesktop},
		hidreport.Usage{Usage: hidreport.UsageGamePad},
		hidreport.Collection{Kind: hidreport.CollectionApplication, Items: []hidreport.Item{
			hidreport.ReportID{ID: ReportIDInput},

			// Sticks + triggers: LX, LY, RX, RY, L2, R2 as 8-bit axes.
			hidreport.UsagePage{Page: hidreport.UsagePageGenericDesktop},
			hidreport.Usage{Usage: hidreport.UsageX},
			hidreport.Usage{Usage: hidreport.UsageY},
			hidreport.Usage{Usage: hidreport.UsageZ},
			hidreport.Usage{Usage: hidreport.UsageRz},
			hidreport.LogicalMinimum{Min: 0},
			hidreport.LogicalMaximum{Max: 255},
			hidreport.ReportSize{Bits: 8},
			hidreport.ReportCount{Count: 4},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			hidreport.Usage{Usage: hidreport.UsageRx},
			hidreport.Usage{Usage: hidreport.UsageRy},
			hidreport.ReportCount{Count: 2},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			// Sequence counter (byte 7).
			hidreport.UsagePage{Page: hidreport.UsagePageVendorDefined},
			hidreport.Usage{Usage: 0x20},
			hidreport.ReportCount{Count: 1},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			// D-pad hat switch.
			hidreport.UsagePage{Page: hidreport.UsagePageGenericDesktop},
			hidreport.Usage{Usage: hidreport.UsageHatSwitch},
			hidreport.LogicalMinimum{Min: 0},
			hidreport.LogicalMaximum{Max: 7},
			hidreport.PhysicalMinimum{Min: 0},
			hidreport.PhysicalMaximum{Max: 315},
			hidreport.ReportSize{Bits: 4},
			hidreport.ReportCount{Count: 1},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs | hidreport.MainNullState},

			// Face/shoulder/stick/menu buttons: 28 one-bit fields, which with
			// the 4-bit hat fill the 4-byte button block (bytes 8-11).
			hidreport.UsagePage{Page: hidreport.UsagePageButton},
			hidreport.UsageMinimum{Min: 0x01},
			hidreport.UsageMaximum{Max: 0x1D},
			hidreport.LogicalMinimum{Min: 0},
			hidreport.LogicalMaximum{Max: 1},
			hidreport.ReportSize{Bits: 1},
			hidreport.ReportCount{Count: 28},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			// Remaining fixed-size input payload: sensors, touch and
			// battery fields not individually itemized.
			hidreport.UsagePage{Page: hidreport.UsagePageVendorDefined},
			hidreport.Usage{Usage: 0x20},
			hidreport.LogicalMinimum{Min: 0},
			hidreport.LogicalMaximum{Max: 255},
			hidreport.ReportSize{Bits: 8},
			hidreport.ReportCount{Count: InputReportSize - 1 - 6 - 1 - 4},
			hidreport.Input{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			// Output report (id 2): rumble motors + lightbar + reserved.
			hidreport.ReportID{ID: ReportIDOutput},
			hidreport.UsagePage{Page: hidreport.UsagePageVendorDefined},
			hidreport.Usage{Usage: 0x21},
			hidreport.LogicalMinimum{Min: 0},
			hidreport.LogicalMaximum{Max: 255},
			hidreport.ReportSize{Bits: 8},
			hidreport.ReportCount{Count: OutputReportSize - 1},
			hidreport.Output{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			// Feature reports, one per GET_REPORT id this device answers.
			hidreport.ReportID{ID: ReportIDCalibration},
			hidreport.Usage{Usage: 0x22},
			hidreport.ReportCount{Count: CalibrationReportSize - 1},
			hidreport.Feature{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			hidreport.ReportID{ID: ReportIDPairingInfo},
			hidreport.Usage{Usage: 0x23},
			hidreport.ReportCount{Count: PairingInfoReportSize - 1},
			hidreport.Feature{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},

			hidreport.ReportID{ID: ReportIDFirmware},
			hidreport.Usage{Usage: 0x24},
			hidreport.ReportCount{Count: FirmwareReportSize - 1},
			hidreport.Feature{Flags: hidreport.MainData | hidreport.MainVar | hidreport.MainAbs},
		}},
	}}
	return r.Bytes()
}
