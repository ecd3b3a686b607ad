// Package device provides the common identity, options and error types
// shared by every virtual HID device factory (mouse, keyboard, trackpad,
// touchscreen, pen tablet, the evdev gamepads, and the UHID DualSense).
package device

import "fmt"

// Definition is the immutable identity used at creation time: display
// name, bus type, vendor/product/version ids, a physical-address string
// and a unique string. UHID-based devices additionally carry a country
// code and the raw HID report descriptor bytes.
type Definition struct {
	Name    string
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16
	Phys    string
	Uniq    string

	Country          uint32
	ReportDescriptor []byte
}

// CreateOptions carries caller overrides applied on top of a device
// package's default Definition. Every factory accepts a *CreateOptions
// that may be nil to mean "use the default identity".
type CreateOptions struct {
	IdVendor  *uint16
	IdProduct *uint16
	Name      *string
	Phys      *string
	Uniq      *string
}

// Apply overlays any non-nil CreateOptions fields onto def, returning the
// resulting Definition.
func (o *CreateOptions) Apply(def Definition) Definition {
	if o == nil {
		return def
	}
	if o.IdVendor != nil {
		def.Vendor = *o.IdVendor
	}
	if o.IdProduct != nil {
		def.Product = *o.IdProduct
	}
	if o.Name != nil {
		def.Name = *o.Name
	}
	if o.Phys != nil {
		def.Phys = *o.Phys
	}
	if o.Uniq != nil {
		def.Uniq = *o.Uniq
	}
	return def
}

// Error is returned by every fallible factory and carries the failing
// operation, a human-readable reason and, where applicable, the
// underlying syscall error.
type Error struct {
	Op     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Handle is implemented by every device factory's returned type: it owns
// one or more kernel device nodes for as long as it is live.
type Handle interface {
	// GetNodes returns the device's /dev/input/event* (and, for
	// gamepads, /dev/input/js*) node paths in stable creation order.
	GetNodes() []string
	// Close releases the underlying kernel device(s) and stops any
	// worker task owned by the handle.
	Close() error
}
