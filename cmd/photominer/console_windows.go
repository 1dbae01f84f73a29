//go:build windows

package main

import "golang.org/x/sys/windows"

// manageConsole detaches the console window unless debugging, so a build
// launched from Explorer does not keep one open.
func manageConsole(debug bool) {
	if !debug {
		windows.NewLazySystemDLL("kernel32.dll").NewProc("FreeConsole").Call()
	}
}
