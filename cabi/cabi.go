//go:build cgo

// Package cabi exposes a C ABI over the device registry, for embedding
// vhid into non-Go hosts. It contains no novel design: every exported
// function is a thin marshaling wrapper over internal/registry, taking
// an error-handler function pointer plus opaque user data and returning
// a zero/NULL value on failure instead of a Go error.
package cabi

/*
#include <stdlib.h>
#include <stdint.h>

typedef void (*vhid_error_fn)(const char *message, void *user_data);

static inline void vhid_call_error_fn(vhid_error_fn fn, const char *msg, void *user_data) {
	if (fn != NULL) {
		fn(msg, user_data);
	}
}
*/
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/nullsink/vhid/device"
	"github.com/nullsink/vhid/internal/registry"

	_ "github.com/nullsink/vhid/device/dualsense"
	_ "github.com/nullsink/vhid/device/keyboard"
	_ "github.com/nullsink/vhid/device/mouse"
	_ "github.com/nullsink/vhid/device/multitouch"
	_ "github.com/nullsink/vhid/device/pentablet"
	_ "github.com/nullsink/vhid/device/switchpad"
	_ "github.com/nullsink/vhid/device/xbox"
)

var (
	mu      sync.Mutex
	nextID  uint64
	handles = make(map[uint64]device.Handle)
	regs    = make(map[uint64]registry.DeviceRegistration)
)

func fail(onError C.vhid_error_fn, userData unsafe.Pointer, msg string) {
	cs := C.CString(msg)
	defer C.free(unsafe.Pointer(cs))
	C.vhid_call_error_fn(onError, cs, userData)
}

// vhid_device_create creates a device of deviceType, applying the JSON
// object in specificJSON (may be NULL/empty for "no extra fields"), and
// returns an opaque non-zero handle id, or 0 on failure.
//
//export vhid_device_create
func vhid_device_create(deviceType *C.char, specificJSON *C.char, onError C.vhid_error_fn, userData unsafe.Pointer) C.uint64_t {
	tag := C.GoString(deviceType)
	reg, ok := registry.GetRegistration(tag)
	if !ok {
		fail(onError, userData, "unknown device type: "+tag)
		return 0
	}

	var specific map[string]any
	if specificJSON != nil {
		raw := C.GoString(specificJSON)
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &specific); err != nil {
				fail(onError, userData, "invalid deviceSpecific JSON: "+err.Error())
				return 0
			}
		}
	}

	h, err := reg.CreateDevice(&device.CreateOptions{}, specific)
	if err != nil {
		fail(onError, userData, err.Error())
		return 0
	}

	mu.Lock()
	nextID++
	id := nextID
	handles[id] = h
	regs[id] = reg
	mu.Unlock()

	return C.uint64_t(id)
}

// vhid_device_destroy tears the device down and frees its handle id.
// Returns 1 on success, 0 on failure (unknown handle or Close error).
//
//export vhid_device_destroy
func vhid_device_destroy(handleID C.uint64_t, onError C.vhid_error_fn, userData unsafe.Pointer) C.int {
	id := uint64(handleID)
	mu.Lock()
	h, ok := handles[id]
	if ok {
		delete(handles, id)
		delete(regs, id)
	}
	mu.Unlock()

	if !ok {
		fail(onError, userData, "unknown device handle")
		return 0
	}
	if err := h.Close(); err != nil {
		fail(onError, userData, err.Error())
		return 0
	}
	return 1
}

// vhid_device_operation invokes a named operation on a live handle,
// passing bodyJSON (may be NULL/empty) as the operation's argument
// object, and returns a heap-allocated JSON string the caller must
// release with vhid_free_string. Returns NULL on failure.
//
//export vhid_device_operation
func vhid_device_operation(handleID C.uint64_t, op *C.char, bodyJSON *C.char, onError C.vhid_error_fn, userData unsafe.Pointer) *C.char {
	id := uint64(handleID)
	mu.Lock()
	h, ok := handles[id]
	reg := regs[id]
	mu.Unlock()
	if !ok {
		fail(onError, userData, "unknown device handle")
		return nil
	}

	fn, ok := reg.Operations()[C.GoString(op)]
	if !ok {
		fail(onError, userData, "unknown operation: "+C.GoString(op))
		return nil
	}

	var body map[string]any
	if bodyJSON != nil {
		raw := C.GoString(bodyJSON)
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &body); err != nil {
				fail(onError, userData, "invalid operation body JSON: "+err.Error())
				return nil
			}
		}
	}

	result, err := fn(h, body)
	if err != nil {
		fail(onError, userData, err.Error())
		return nil
	}

	out, err := json.Marshal(result)
	if err != nil {
		fail(onError, userData, "marshal result: "+err.Error())
		return nil
	}
	return C.CString(string(out))
}

// vhid_get_nodes returns a heap-allocated char** of the device's backing
// node paths (e.g. /dev/input/eventN) and writes the array length to
// count. The caller releases it with vhid_free_nodes. Returns NULL with
// count=0 for devices (e.g. the DualSense UHID device) that expose no
// single predictable node path.
//
//export vhid_get_nodes
func vhid_get_nodes(handleID C.uint64_t, count *C.int) **C.char {
	id := uint64(handleID)
	mu.Lock()
	h, ok := handles[id]
	mu.Unlock()
	if !ok {
		*count = 0
		return nil
	}

	nodes := h.GetNodes()
	if len(nodes) == 0 {
		*count = 0
		return nil
	}

	size := unsafe.Sizeof(uintptr(0))
	arr := C.malloc(C.size_t(len(nodes)) * C.size_t(size))
	out := (*[1 << 20]*C.char)(arr)[:len(nodes):len(nodes)]
	for i, n := range nodes {
		out[i] = C.CString(n)
	}
	*count = C.int(len(nodes))
	return (**C.char)(arr)
}

// vhid_free_string releases a string returned by vhid_device_operation.
//
//export vhid_free_string
func vhid_free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// vhid_free_nodes releases an array returned by vhid_get_nodes.
//
//export vhid_free_nodes
func vhid_free_nodes(nodes **C.char, count C.int) {
	if nodes == nil {
		return
	}
	slice := (*[1 << 20]*C.char)(unsafe.Pointer(nodes))[:count:count]
	for _, s := range slice {
		C.free(unsafe.Pointer(s))
	}
	C.free(unsafe.Pointer(nodes))
}
