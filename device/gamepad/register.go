package gamepad

// buttonNames maps the JSON wire names accepted by the REST façade's
// "buttons" array onto the abstract bitmask, shared by both the Xbox and
// Switch registrations.
var buttonNames = map[string]Button{
	"a": ButtonA, "b": ButtonB, "x": ButtonX, "y": ButtonY,
	"tl": ButtonTL, "tr": ButtonTR, "tl2": ButtonTL2, "tr2": ButtonTR2,
	"select": ButtonSelect, "start": ButtonStart, "mode": ButtonMode,
	"thumbl": ButtonThumbL, "thumbr": ButtonThumbR, "capture": ButtonCapture,
	"dpad_up": ButtonDpadUp, "dpad_down": ButtonDpadDown,
	"dpad_left": ButtonDpadLeft, "dpad_right": ButtonDpadRight,
}

// ParseButtonMask turns a JSON body's "buttons" array of wire names (e.g.
// ["a","tl","dpad_up"]) into the abstract Button bitmask; unknown names
// are ignored.
func ParseButtonMask(names []any) Button {
	var mask Button
	for _, n := range names {
		s, ok := n.(string)
		if !ok {
			continue
		}
		if b, ok := buttonNames[s]; ok {
			mask |= b
		}
	}
	return mask
}

// StickSideFromString maps "left"/"right" onto StickSide, defaulting to
// StickLeft for anything else.
func StickSideFromString(s string) StickSide {
	if s == "right" {
		return StickRight
	}
	return StickLeft
}
