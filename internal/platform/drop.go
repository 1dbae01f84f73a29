// Package platform bridges native drag-and-drop into the application.
package platform

import (
	"sync"

	"github.com/justyntemme/photominer/internal/debug"
)

// DragKind identifies the phase of an external drag session
// The Windows backend sends only Drop and other platforms have no native
// hook yet, so DragEnter and DragExit come only through Deliver.
type DragKind int

const (
	DragEnter DragKind = iota
	DragExit
	Drop
)

func (k DragKind) String() string {
	switch k {
	case DragEnter:
		return "enter"
	case DragExit:
		return "exit"
	case Drop:
		return "drop"
	}
	return "unknown"
}

// DragEvent is one phase of an external drag. Paths holds the dragged
// items as paths or file:// URIs; it is empty for DragExit.
type DragEvent struct {
	Kind  DragKind
	Paths []string
}

// DragHandler is called for every external drag event
type DragHandler func(DragEvent)

var (
	dragHandler DragHandler
	dropMu      sync.Mutex
	pendingDrop []DragEvent
)

// SetDragHandler sets the callback for external drags. Drops that arrived
// before a handler was registered are delivered immediately.
func SetDragHandler(handler DragHandler) {
	dropMu.Lock()
	dragHandler = handler
	pending := pendingDrop
	if handler != nil {
		pendingDrop = nil
	}
	dropMu.Unlock()

	if handler == nil {
		return
	}
	if len(pending) > 0 {
		debug.Log(debug.DROP, "delivering %d pending drops", len(pending))
	}
	for _, e := range pending {
		handler(e)
	}
}

// Deliver hands an event from a native backend to the registered handler.
// Without a handler, drops are queued; enter and exit are meaningless
// later and are discarded.
func Deliver(e DragEvent) {
	dropMu.Lock()
	handler := dragHandler
	if handler == nil && e.Kind == Drop {
		pendingDrop = append(pendingDrop, e)
	}
	dropMu.Unlock()

	debug.Log(debug.DROP, "%s: %d items, handler=%v", e.Kind, len(e.Paths), handler != nil)
	if handler != nil {
		handler(e)
	}
}
