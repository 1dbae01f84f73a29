//go:build !windows

package app

// handlePlatformEvent handles platform-specific view events (no native drop hook outside Windows)
func (o *Orchestrator) handlePlatformEvent(e any) bool {
	return false
}
