package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nullsink/vhid/apitypes"
	"github.com/nullsink/vhid/device"
)

// Client provides a high-level interface to the vhid REST API, handling
// request formatting, response parsing, and error handling.
type Client struct{ transport *Transport }

// New constructs a high-level API client. addr is the server's host:port
// (e.g. "localhost:3242").
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport implementation.
// This is primarily useful for testing or when advanced transport
// configuration is needed.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping checks that the server is reachable and returns its identity.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	raw, status, err := c.transport.DoCtx(ctx, http.MethodGet, "/api/v1.0/ping", nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.PingResponse](raw, status)
}

// DevicesList retrieves every live device known to the server.
func (c *Client) DevicesList() (*apitypes.DevicesListResponse, error) {
	return c.DevicesListCtx(context.Background())
}

func (c *Client) DevicesListCtx(ctx context.Context) (*apitypes.DevicesListResponse, error) {
	raw, status, err := c.transport.DoCtx(ctx, http.MethodGet, "/api/v1.0/devices", nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DevicesListResponse](raw, status)
}

// DeviceAdd creates a new device of the given type (e.g. "mouse",
// "keyboard", "xbox", "switch", "trackpad", "touchscreen", "pen_tablet",
// "ps5"). specific carries per-type construction fields (a keyboard's
// repeat interval, a multitouch device's resolution, ...).
func (c *Client) DeviceAdd(devType string, o *device.CreateOptions, specific map[string]any) (*apitypes.Device, error) {
	return c.DeviceAddCtx(context.Background(), devType, o, specific)
}

func (c *Client) DeviceAddCtx(ctx context.Context, devType string, o *device.CreateOptions, specific map[string]any) (*apitypes.Device, error) {
	if o == nil {
		o = &device.CreateOptions{}
	}
	req := apitypes.DeviceCreateRequest{
		Type:           &devType,
		IdVendor:       o.IdVendor,
		IdProduct:      o.IdProduct,
		DeviceSpecific: specific,
	}
	raw, status, err := c.transport.DoCtx(ctx, http.MethodPost, "/api/v1.0/devices/add", req)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.Device](raw, status)
}

// DeviceRemove tears down the device with the given id.
func (c *Client) DeviceRemove(id string) (*apitypes.DeviceRemoveResponse, error) {
	return c.DeviceRemoveCtx(context.Background(), id)
}

func (c *Client) DeviceRemoveCtx(ctx context.Context, id string) (*apitypes.DeviceRemoveResponse, error) {
	raw, status, err := c.transport.DoCtx(ctx, http.MethodDelete, "/api/v1.0/devices/"+id, nil)
	if err != nil {
		return nil, err
	}
	return parse[apitypes.DeviceRemoveResponse](raw, status)
}

// DeviceOperation invokes a named operation (e.g. "move_rel", "press",
// "set_buttons", "place_finger") on a live device, with op-specific
// arguments carried in body.
func (c *Client) DeviceOperation(devType, id, op string, body map[string]any) (map[string]any, error) {
	return c.DeviceOperationCtx(context.Background(), devType, id, op, body)
}

func (c *Client) DeviceOperationCtx(ctx context.Context, devType, id, op string, body map[string]any) (map[string]any, error) {
	path := fmt.Sprintf("/api/v1.0/devices/%s/%s/%s", devType, id, op)
	raw, status, err := c.transport.DoCtx(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return parse[map[string]any](raw, status)
}

// parse decodes a REST response body into T, translating a non-2xx status
// into the server's RFC 7807 ApiError.
func parse[T any](data []byte, status int) (*T, error) {
	if status < 200 || status >= 300 {
		var problem apitypes.ApiError
		if err := json.Unmarshal(data, &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
			return nil, &problem
		}
		return nil, fmt.Errorf("unexpected status %d: %s", status, string(data))
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
