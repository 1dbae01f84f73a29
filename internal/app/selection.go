package app

import (
	"time"

	"gioui.org/io/pointer"

	"github.com/justyntemme/photominer/internal/debug"
	"github.com/justyntemme/photominer/internal/ui"
)

// doubleClickInterval is the longest gap between two presses on the same
// cell that still opens the picture
const doubleClickInterval = 500 * time.Millisecond

// clickTracker turns two presses on the same cell into a double click
type clickTracker struct {
	lastIndex int
	lastTime  time.Duration // pointer.Event.Time of the previous press
	armed     bool
}

// press records a press on index at t and reports whether it completes a
// double click. A completed double click disarms the tracker so a third
// press starts over.
func (c *clickTracker) press(index int, t time.Duration) bool {
	double := c.armed && c.lastIndex == index && t-c.lastTime < doubleClickInterval
	if double {
		c.reset()
		return true
	}
	c.armed = true
	c.lastIndex = index
	c.lastTime = t
	return false
}

func (c *clickTracker) reset() {
	*c = clickTracker{}
}

// Clicked selects the cell; a double click opens the picture
func (o *Orchestrator) Clicked(cell *ui.ThumbnailCell, e pointer.Event) {
	o.gallery.Select(cell.Index)
	if o.clicks.press(cell.Index, e.Time) {
		debug.Log(debug.UI_EVENT, "double click on cell %d", cell.Index)
		o.openSelected()
	}
	o.invalidate()
}

// RightClicked selects the cell and reveals the picture in the file manager
func (o *Orchestrator) RightClicked(cell *ui.ThumbnailCell, e pointer.Event) {
	o.clicks.reset()
	o.gallery.Select(cell.Index)
	o.revealSelected()
	o.invalidate()
}
