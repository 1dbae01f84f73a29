//go:build darwin

package app

import "os/exec"

// platformOpen opens the file using the macOS 'open' command.
func platformOpen(path string) error {
	return exec.Command("open", path).Start()
}

// platformReveal selects the file in Finder.
func platformReveal(path string) error {
	return exec.Command("open", "-R", path).Start()
}
