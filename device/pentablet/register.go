package pentablet

import (
	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"
)

type registration struct{}

func (registration) CreateDevice(o *device.CreateOptions, _ map[string]any) (device.Handle, error) {
	return New(o)
}

var toolNames = map[string]Tool{
	"pen": ToolPen, "rubber": ToolRubber, "brush": ToolBrush,
	"pencil": ToolPencil, "airbrush": ToolAirbrush,
}

var stylusButtonNames = map[string]StylusButton{
	"1": StylusButton1, "2": StylusButton2, "3": StylusButton3,
}

func (registration) Operations() map[string]registry.OperationFunc {
	return map[string]registry.OperationFunc{
		"place_tool": func(h device.Handle, body map[string]any) (any, error) {
			tool := SameAsBefore
			if t, ok := toolNames[registry.String(body, "tool")]; ok {
				tool = t
			}
			return nil, h.(*Device).PlaceTool(tool,
				registry.Float64(body, "x"), registry.Float64(body, "y"),
				registry.Float64Or(body, "pressure", -1), registry.Float64Or(body, "distance", -1),
				registry.Float64(body, "tilt_x"), registry.Float64(body, "tilt_y"))
		},
		"set_button": func(h device.Handle, body map[string]any) (any, error) {
			btn := stylusButtonNames[registry.String(body, "button")]
			return nil, h.(*Device).SetButton(btn, registry.Bool(body, "pressed"))
		},
	}
}

func init() { registry.RegisterDevice("pen_tablet", registration{}) }
