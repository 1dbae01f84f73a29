//go:build windows

package platform

// Windows drag-and-drop implementation using WM_DROPFILES.
// DragAcceptFiles + window subclassing receive dropped files without COM.
// WM_DROPFILES carries no enter/exit notifications, so only Drop is delivered.

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/justyntemme/photominer/internal/debug"
)

const wmDropFiles = 0x0233

var (
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	comctl32 = windows.NewLazySystemDLL("comctl32.dll")

	procDragAcceptFiles   = shell32.NewProc("DragAcceptFiles")
	procDragQueryFileW    = shell32.NewProc("DragQueryFileW")
	procDragFinish        = shell32.NewProc("DragFinish")
	procSetWindowSubclass = comctl32.NewProc("SetWindowSubclass")
	procDefSubclassProc   = comctl32.NewProc("DefSubclassProc")

	// Kept referenced so the callback is not collected
	subclassCallback uintptr
)

const dropSubclassID = 1

// dropSubclassProc has the SUBCLASSPROC signature
func dropSubclassProc(hwnd uintptr, msg uint32, wParam, lParam, uIdSubclass, dwRefData uintptr) uintptr {
	if msg == wmDropFiles {
		handleDropFiles(wParam)
		return 0
	}
	ret, _, _ := procDefSubclassProc.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

// handleDropFiles extracts file paths from an HDROP and delivers them
func handleDropFiles(hDrop uintptr) {
	defer procDragFinish.Call(hDrop)

	count, _, _ := procDragQueryFileW.Call(hDrop, 0xFFFFFFFF, 0, 0)
	debug.Log(debug.DROP, "[Windows] drop contains %d items", count)

	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		size, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		if size == 0 {
			continue
		}
		buf := make([]uint16, size+1)
		procDragQueryFileW.Call(hDrop, i, uintptr(unsafe.Pointer(&buf[0])), size+1)
		paths = append(paths, windows.UTF16ToString(buf))
	}

	if len(paths) > 0 {
		Deliver(DragEvent{Kind: Drop, Paths: paths})
	}
}

// SetupExternalDrop configures the window to accept external file drops
func SetupExternalDrop(hwnd uintptr) {
	if hwnd == 0 {
		return
	}

	procDragAcceptFiles.Call(hwnd, 1)

	subclassCallback = syscall.NewCallback(dropSubclassProc)
	ret, _, err := procSetWindowSubclass.Call(hwnd, subclassCallback, dropSubclassID, 0)
	if ret == 0 {
		debug.Log(debug.DROP, "[Windows] SetWindowSubclass failed: %v", err)
		return
	}
	debug.Log(debug.DROP, "[Windows] window 0x%x accepts file drops", hwnd)
}
