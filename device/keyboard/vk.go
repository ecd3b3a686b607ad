package keyboard

import "github.com/nullsink/vhid/internal/evdevcodes"

// keyMapping is one Win32 virtual-key code's Linux key code plus the
// PS/2 scan code MSC_SCAN reports alongside it.
type keyMapping struct {
	linux uint16
	scan  uint32
}

// vkTable maps Win32 VK_* codes to their Linux/scan-code pair. Unknown
// VKs are silently dropped by press/release, per the spec's edge case.
var vkTable = map[int]keyMapping{
	0x08: {evdevcodes.KeyBackspace, 0x0e},
	0x09: {evdevcodes.KeyTab, 0x0f},
	0x0D: {evdevcodes.KeyEnter, 0x1c},
	0x10: {evdevcodes.KeyLeftShift, 0x2a},
	0x11: {evdevcodes.KeyLeftCtrl, 0x1d},
	0x12: {evdevcodes.KeyLeftAlt, 0x38},
	0x13: {evdevcodes.KeySysrq, 0x54},
	0x14: {evdevcodes.KeyCapslock, 0x3a},
	0x1B: {evdevcodes.KeyEsc, 0x01},
	0x20: {evdevcodes.KeySpace, 0x39},
	0x21: {evdevcodes.KeyPageUp, 0xe049},
	0x22: {evdevcodes.KeyPageDown, 0xe051},
	0x23: {evdevcodes.KeyEnd, 0xe04f},
	0x24: {evdevcodes.KeyHome, 0xe047},
	0x25: {evdevcodes.KeyLeft, 0xe04b},
	0x26: {evdevcodes.KeyUp, 0xe048},
	0x27: {evdevcodes.KeyRight, 0xe04d},
	0x28: {evdevcodes.KeyDown, 0xe050},
	0x2D: {evdevcodes.KeyInsert, 0xe052},
	0x2E: {evdevcodes.KeyDelete, 0xe053},
	0x30: {evdevcodes.Key0, 0x0b},
	0x31: {evdevcodes.Key1, 0x02},
	0x32: {evdevcodes.Key2, 0x03},
	0x33: {evdevcodes.Key3, 0x04},
	0x34: {evdevcodes.Key4, 0x05},
	0x35: {evdevcodes.Key5, 0x06},
	0x36: {evdevcodes.Key6, 0x07},
	0x37: {evdevcodes.Key7, 0x08},
	0x38: {evdevcodes.Key8, 0x09},
	0x39: {evdevcodes.Key9, 0x0a},
	0x41: {evdevcodes.KeyA, 0x1e},
	0x42: {evdevcodes.KeyB, 0x30},
	0x43: {evdevcodes.KeyC, 0x2e},
	0x44: {evdevcodes.KeyD, 0x20},
	0x45: {evdevcodes.KeyE, 0x12},
	0x46: {evdevcodes.KeyF, 0x21},
	0x47: {evdevcodes.KeyG, 0x22},
	0x48: {evdevcodes.KeyH, 0x23},
	0x49: {evdevcodes.KeyI, 0x17},
	0x4A: {evdevcodes.KeyJ, 0x24},
	0x4B: {evdevcodes.KeyK, 0x25},
	0x4C: {evdevcodes.KeyL, 0x26},
	0x4D: {evdevcodes.KeyM, 0x32},
	0x4E: {evdevcodes.KeyN, 0x31},
	0x4F: {evdevcodes.KeyO, 0x18},
	0x50: {evdevcodes.KeyP, 0x19},
	0x51: {evdevcodes.KeyQ, 0x10},
	0x52: {evdevcodes.KeyR, 0x13},
	0x53: {evdevcodes.KeyS, 0x1f},
	0x54: {evdevcodes.KeyT, 0x14},
	0x55: {evdevcodes.KeyU, 0x16},
	0x56: {evdevcodes.KeyV, 0x2f},
	0x57: {evdevcodes.KeyW, 0x11},
	0x58: {evdevcodes.KeyX, 0x2d},
	0x59: {evdevcodes.KeyY, 0x15},
	0x5A: {evdevcodes.KeyZ, 0x2c},
	0x5B: {evdevcodes.KeyLeftMeta, 0xe05b},
	0x5C: {evdevcodes.KeyRightMeta, 0xe05c},
	0x60: {evdevcodes.KeyKP0, 0x52},
	0x61: {evdevcodes.KeyKP1, 0x4f},
	0x62: {evdevcodes.KeyKP2, 0x50},
	0x63: {evdevcodes.KeyKP3, 0x51},
	0x64: {evdevcodes.KeyKP4, 0x4b},
	0x65: {evdevcodes.KeyKP5, 0x4c},
	0x66: {evdevcodes.KeyKP6, 0x4d},
	0x67: {evdevcodes.KeyKP7, 0x47},
	0x68: {evdevcodes.KeyKP8, 0x48},
	0x69: {evdevcodes.KeyKP9, 0x49},
	0x6A: {evdevcodes.KeyKPAsterisk, 0x37},
	0x6B: {evdevcodes.KeyKPPlus, 0x4e},
	0x6D: {evdevcodes.KeyKPMinus, 0x4a},
	0x6E: {evdevcodes.KeyKPDot, 0x53},
	0x6F: {evdevcodes.KeyKPSlash, 0xe035},
	0x70: {evdevcodes.KeyF1, 0x3b},
	0x71: {evdevcodes.KeyF2, 0x3c},
	0x72: {evdevcodes.KeyF3, 0x3d},
	0x73: {evdevcodes.KeyF4, 0x3e},
	0x74: {evdevcodes.KeyF5, 0x3f},
	0x75: {evdevcodes.KeyF6, 0x40},
	0x76: {evdevcodes.KeyF7, 0x41},
	0x77: {evdevcodes.KeyF8, 0x42},
	0x78: {evdevcodes.KeyF9, 0x43},
	0x79: {evdevcodes.KeyF10, 0x44},
	0x7A: {evdevcodes.KeyF11, 0x57},
	0x7B: {evdevcodes.KeyF12, 0x58},
	0x90: {evdevcodes.KeyNumlock, 0x45},
	0x91: {evdevcodes.KeyScrolllock, 0x46},
	0xA0: {evdevcodes.KeyLeftShift, 0x2a},
	0xA1: {evdevcodes.KeyRightShift, 0x36},
	0xA2: {evdevcodes.KeyLeftCtrl, 0x1d},
	0xA3: {evdevcodes.KeyRightCtrl, 0xe01d},
	0xA4: {evdevcodes.KeyLeftAlt, 0x38},
	0xA5: {evdevcodes.KeyRightAlt, 0xe038},
	0xBA: {evdevcodes.KeySemicolon, 0x27},
	0xBB: {evdevcodes.KeyEqual, 0x0d},
	0xBC: {evdevcodes.KeyComma, 0x33},
	0xBD: {evdevcodes.KeyMinus, 0x0c},
	0xBE: {evdevcodes.KeyDot, 0x34},
	0xBF: {evdevcodes.KeySlash, 0x35},
	0xC0: {evdevcodes.KeyGrave, 0x29},
	0xDB: {evdevcodes.KeyLeftBrace, 0x1a},
	0xDC: {evdevcodes.KeyBackslash, 0x2b},
	0xDD: {evdevcodes.KeyRightBrace, 0x1b},
	0xDE: {evdevcodes.KeyApostrophe, 0x28},
}
