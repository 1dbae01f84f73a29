//go:build linux

package app

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// platformOpen opens the file using 'xdg-open' (default application).
func platformOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}

// platformReveal shows the file in the file manager. The FileManager1
// D-Bus interface selects the file; without it the folder is opened.
func platformReveal(path string) error {
	if _, err := exec.LookPath("dbus-send"); err == nil {
		uri := "file://" + filepath.ToSlash(path)
		err := exec.Command("dbus-send", "--session", "--print-reply",
			"--dest=org.freedesktop.FileManager1",
			"/org/freedesktop/FileManager1",
			"org.freedesktop.FileManager1.ShowItems",
			"array:string:"+strings.ReplaceAll(uri, ",", "%2C"), "string:").Run()
		if err == nil {
			return nil
		}
	}
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}
