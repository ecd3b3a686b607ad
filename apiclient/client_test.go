package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apiclient "github.com/nullsink/vhid/apiclient"
	apitypes "github.com/nullsink/vhid/apitypes"

	"github.com/stretchr/testify/assert"
)

// testClient constructs a client backed by a simple in-memory responder.
// responses maps "METHOD path" to raw JSON payloads; statuses maps the
// same key to an HTTP status (default 200 when absent).
func testClient(responses map[string]string, statuses map[string]int, err error) *apiclient.Client {
	return apiclient.WithTransport(apiclient.NewMockTransport(func(method, path string, _ any) ([]byte, int, error) {
		if err != nil {
			return nil, 0, err
		}
		key := method + " " + path
		status := 200
		if s, ok := statuses[key]; ok {
			status = s
		}
		if out, ok := responses[key]; ok {
			return []byte(out), status, nil
		}
		return nil, status, nil
	}))
}

func TestHighLevelClient(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(responses map[string]string, statuses map[string]int) (err error)
		call       func(c *apiclient.Client) (any, error)
		wantErr    string
		assertFunc func(t *testing.T, got any)
	}{
		{
			name: "device add success",
			setup: func(responses map[string]string, statuses map[string]int) error {
				key := http.MethodPost + " /api/v1.0/devices/add"
				responses[key] = `{"device_id":"abcd1234","type":"mouse","device_nodes":["/dev/input/event3"]}`
				statuses[key] = 201
				return nil
			},
			call: func(c *apiclient.Client) (any, error) { return c.DeviceAdd("mouse", nil, nil) },
			assertFunc: func(t *testing.T, got any) {
				d, ok := got.(*apitypes.Device)
				assert.True(t, ok, "expected *apitypes.Device type")
				assert.Equal(t, "mouse", d.Type)
			},
		},
		{
			name: "device add error structured",
			setup: func(responses map[string]string, statuses map[string]int) error {
				key := http.MethodPost + " /api/v1.0/devices/add"
				responses[key] = `{"status":400,"title":"Bad Request","detail":"unknown device type"}`
				statuses[key] = 400
				return nil
			},
			call:    func(c *apiclient.Client) (any, error) { return c.DeviceAdd("bogus", nil, nil) },
			wantErr: "400 Bad Request: unknown device type",
		},
		{
			name: "devices list",
			setup: func(responses map[string]string, statuses map[string]int) error {
				responses[http.MethodGet+" /api/v1.0/devices"] = `{"devices":[{"device_id":"a","type":"mouse","device_nodes":["/dev/input/event3"]}]}`
				return nil
			},
			call:       func(c *apiclient.Client) (any, error) { return c.DevicesList() },
			assertFunc: func(t *testing.T, got any) { assert.NotNil(t, got) },
		},
		{
			name:    "transport failure",
			setup:   func(responses map[string]string, statuses map[string]int) error { return errors.New("dial fail") },
			call:    func(c *apiclient.Client) (any, error) { return c.DevicesList() },
			wantErr: "dial fail",
		},
		{
			name: "devices list empty",
			setup: func(responses map[string]string, statuses map[string]int) error {
				responses[http.MethodGet+" /api/v1.0/devices"] = `{"devices":[]}`
				return nil
			},
			call: func(c *apiclient.Client) (any, error) { return c.DevicesList() },
			assertFunc: func(t *testing.T, got any) {
				resp := got.(*apitypes.DevicesListResponse)
				assert.Len(t, resp.Devices, 0)
			},
		},
		{
			name: "device remove missing",
			setup: func(responses map[string]string, statuses map[string]int) error {
				key := http.MethodDelete + " /api/v1.0/devices/no-such-id"
				responses[key] = `{"status":404,"title":"Not Found","detail":"no such device"}`
				statuses[key] = 404
				return nil
			},
			call:    func(c *apiclient.Client) (any, error) { return c.DeviceRemove("no-such-id") },
			wantErr: "404 Not Found: no such device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := map[string]string{}
			statuses := map[string]int{}
			errInject := error(nil)
			if tt.setup != nil {
				if e := tt.setup(responses, statuses); e != nil {
					errInject = e
				}
			}
			c := testClient(responses, statuses, errInject)
			got, err := tt.call(c)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if tt.assertFunc != nil {
				tt.assertFunc(t, got)
			}
		})
	}
}

func TestContextCancellation(t *testing.T) {
	c := apiclient.WithTransport(apiclient.NewTransport("127.0.0.1:9")) // address irrelevant due to early cancel
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.DevicesListCtx(ctx)
	assert.Error(t, err)
}

func TestDeviceOperationRoundTrip(t *testing.T) {
	responses := map[string]string{
		http.MethodPost + " /api/v1.0/devices/mouse/abcd1234/move_rel": `{"success":true}`,
	}
	c := testClient(responses, nil, nil)
	got, err := c.DeviceOperation("mouse", "abcd1234", "move_rel", map[string]any{"dx": 5, "dy": -3})
	assert.NoError(t, err)
	assert.Equal(t, true, got["success"])
}
