//go:build !windows

package platform

// SetupExternalDrop configures native file drop handling (no-op on this platform).
// Drops can still arrive through Deliver, e.g. from command-line arguments.
func SetupExternalDrop(viewPtr uintptr) {}
