// Package device defines the device discovery surface. Concrete managers
// for individual platforms register through the ambient context; the tool
// core only depends on these interfaces.
package device

import "context"

// Category groups devices by target platform.
type Category string

const (
	CategoryMobile  Category = "mobile"
	CategoryWeb     Category = "web"
	CategoryDesktop Category = "desktop"
)

// Device is a connected or connectable target.
type Device interface {
	// ID is a stable identifier, e.g. an adb serial.
	ID() string
	// Name is the human-readable device name.
	Name() string
	// Category reports the device's platform group.
	Category() Category
	// IsEmulator reports whether the device is emulated.
	IsEmulator() bool
}

// Manager discovers devices across all registered platforms.
type Manager interface {
	// Devices lists every discoverable device.
	Devices(ctx context.Context) ([]Device, error)
	// DeviceByID returns the device with the given ID, or nil when no
	// device matches.
	DeviceByID(ctx context.Context, id string) (Device, error)
}
