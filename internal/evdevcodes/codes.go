// Package evdevcodes carries the subset of Linux evdev/uinput uapi constants
// this module's device factories need: event types, key/button/abs/rel
// codes, input properties and force-feedback effect types.
//
// Values are taken from the kernel's uapi/linux/input-event-codes.h and
// uapi/linux/input.h and are not derived or computed; they are wire
// constants that must match the running kernel exactly.
package evdevcodes

// Input properties (EVIOCGPROP / UI_SET_PROPBIT).
const (
	InputPropPointer  = 0x00
	InputPropDirect   = 0x01
	InputPropButtonpad = 0x02
	InputPropSemiMT   = 0x03
)

// Event types.
const (
	EvSyn     = 0x00
	EvKey     = 0x01
	EvRel     = 0x02
	EvAbs     = 0x03
	EvMsc     = 0x04
	EvFF      = 0x15
	EvFFStatus = 0x17
	EvUinput  = 0x0101 // EV_UINPUT, used by the kernel to signal FF upload/erase requests.
)

// Synchronization codes (EV_SYN).
const (
	SynReport = 0
	SynConfig = 1
	SynMTReport = 2
	SynDropped = 3
)

// Miscellaneous codes (EV_MSC).
const (
	MscSerial = 0x00
	MscPulseled = 0x01
	MscGesture = 0x02
	MscRaw = 0x03
	MscScan = 0x04
)

// Relative axis codes (EV_REL).
const (
	RelX = 0x00
	RelY = 0x01
	RelWheel = 0x08
	RelHWheel = 0x06
	RelWheelHiRes = 0x0b
	RelHWheelHiRes = 0x0c
)

// Absolute axis codes (EV_ABS).
const (
	AbsX = 0x00
	AbsY = 0x01
	AbsZ = 0x02
	AbsRX = 0x03
	AbsRY = 0x04
	AbsRZ = 0x05
	AbsThrottle = 0x06
	AbsHat0X = 0x10
	AbsHat0Y = 0x11
	AbsPressure = 0x18
	AbsDistance = 0x19
	AbsTiltX = 0x1a
	AbsTiltY = 0x1b

	AbsMTSlot        = 0x2f
	AbsMTTouchMajor  = 0x30
	AbsMTTouchMinor  = 0x31
	AbsMTOrientation = 0x34
	AbsMTPositionX   = 0x35
	AbsMTPositionY   = 0x36
	AbsMTTrackingID  = 0x39
	AbsMTPressure    = 0x3a

	AbsMax = 0x3f
	AbsCnt = AbsMax + 1
)

// Key/button codes (EV_KEY).
const (
	BtnMouse  = 0x110
	BtnLeft   = 0x110
	BtnRight  = 0x111
	BtnMiddle = 0x112
	BtnSide   = 0x113
	BtnExtra  = 0x114

	BtnGamepad = 0x130
	BtnSouth   = 0x130
	BtnA       = BtnSouth
	BtnEast    = 0x131
	BtnB       = BtnEast
	BtnC       = 0x132
	BtnNorth   = 0x133
	BtnX       = BtnNorth
	BtnWest    = 0x134
	BtnY       = BtnWest
	BtnZ       = 0x135
	BtnTL      = 0x136
	BtnTR      = 0x137
	BtnTL2     = 0x138
	BtnTR2     = 0x139
	BtnSelect  = 0x13a
	BtnStart   = 0x13b
	BtnMode    = 0x13c
	BtnThumbL  = 0x13d
	BtnThumbR  = 0x13e

	BtnToolPen       = 0x140
	BtnToolRubber    = 0x141
	BtnToolBrush     = 0x142
	BtnToolPencil    = 0x143
	BtnToolAirbrush  = 0x144
	BtnToolFinger    = 0x145
	BtnToolQuintTap  = 0x148
	BtnStylus3       = 0x149
	BtnTouch         = 0x14a
	BtnStylus        = 0x14b
	BtnStylus2       = 0x14c
	BtnToolDoubleTap = 0x14d
	BtnToolTripleTap = 0x14e
	BtnToolQuadTap   = 0x14f
)

// Force-feedback effect types (EV_FF) and the companion EV_UINPUT request
// codes used to shuttle FF_UPLOAD/FF_ERASE through uinput.
const (
	FFRumble   = 0x50
	FFPeriodic = 0x51
	FFConstant = 0x52
	FFRamp     = 0x58

	FFSquare   = 0x53
	FFTriangle = 0x54
	FFSine     = 0x55

	FFGain     = 0x60
	FFAutocenter = 0x61

	FFMaxEffects = 0x7f
	FFCnt        = FFMaxEffects + 1

	// UIFFUpload / UIFFErase are the EV_UINPUT codes the kernel sends to
	// notify userspace that a force-feedback effect upload or erase is
	// pending on this uinput fd.
	UIFFUpload = 1
	UIFFErase  = 2
)

// BusType values used in the input_id/uhid device identity.
const (
	BusUSB       = 0x03
	BusBluetooth = 0x05
	BusVirtual   = 0x06
)

// Keyboard key codes (EV_KEY), the subset the keyboard factory's Win32
// virtual-key table maps into.
const (
	KeyEsc       = 1
	Key1         = 2
	Key2         = 3
	Key3         = 4
	Key4         = 5
	Key5         = 6
	Key6         = 7
	Key7         = 8
	Key8         = 9
	Key9         = 10
	Key0         = 11
	KeyMinus     = 12
	KeyEqual     = 13
	KeyBackspace = 14
	KeyTab       = 15
	KeyQ         = 16
	KeyW         = 17
	KeyE         = 18
	KeyR         = 19
	KeyT         = 20
	KeyY         = 21
	KeyU         = 22
	KeyI         = 23
	KeyO         = 24
	KeyP         = 25
	KeyLeftBrace = 26
	KeyRightBrace = 27
	KeyEnter     = 28
	KeyLeftCtrl  = 29
	KeyA         = 30
	KeyS         = 31
	KeyD         = 32
	KeyF         = 33
	KeyG         = 34
	KeyH         = 35
	KeyJ         = 36
	KeyK         = 37
	KeyL         = 38
	KeySemicolon = 39
	KeyApostrophe = 40
	KeyGrave     = 41
	KeyLeftShift = 42
	KeyBackslash = 43
	KeyZ         = 44
	KeyX         = 45
	KeyC         = 46
	KeyV         = 47
	KeyB         = 48
	KeyN         = 49
	KeyM         = 50
	KeyComma     = 51
	KeyDot       = 52
	KeySlash     = 53
	KeyRightShift = 54
	KeyKPAsterisk = 55
	KeyLeftAlt   = 56
	KeySpace     = 57
	KeyCapslock  = 58
	KeyF1        = 59
	KeyF2        = 60
	KeyF3        = 61
	KeyF4        = 62
	KeyF5        = 63
	KeyF6        = 64
	KeyF7        = 65
	KeyF8        = 66
	KeyF9        = 67
	KeyF10       = 68
	KeyNumlock   = 69
	KeyScrolllock = 70
	KeyKP7       = 71
	KeyKP8       = 72
	KeyKP9       = 73
	KeyKPMinus   = 74
	KeyKP4       = 75
	KeyKP5       = 76
	KeyKP6       = 77
	KeyKPPlus    = 78
	KeyKP1       = 79
	KeyKP2       = 80
	KeyKP3       = 81
	KeyKP0       = 82
	KeyKPDot     = 83
	KeyF11       = 87
	KeyF12       = 88
	KeyKPEnter   = 96
	KeyRightCtrl = 97
	KeyKPSlash   = 98
	KeySysrq     = 99
	KeyRightAlt  = 100
	KeyHome      = 102
	KeyUp        = 103
	KeyPageUp    = 104
	KeyLeft      = 105
	KeyRight     = 106
	KeyEnd       = 107
	KeyDown      = 108
	KeyPageDown  = 109
	KeyInsert    = 110
	KeyDelete    = 111
	KeyLeftMeta  = 125
	KeyRightMeta = 126
	KeyCompose   = 127
)
