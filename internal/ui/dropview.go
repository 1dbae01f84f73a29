package ui

import (
	"image"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/photominer/internal/debug"
)

// DragOperation is the answer to an external drag entering the view
type DragOperation int

const (
	DragNone DragOperation = iota
	DragCopy
)

// DirectoryConfigurer accepts a new set of lookup directories and reports
// whether they were taken.
type DirectoryConfigurer interface {
	SetLookupDirectories(paths []string) bool
}

// ScanStarter starts scanning the configured lookup directories
type ScanStarter interface {
	StartScan()
}

// ItemCounter reports how many pictures are loaded
type ItemCounter interface {
	Len() int
}

const fadeDuration = 250 * time.Millisecond

// DropView is the overlay that accepts folders dragged in from the file
// manager. It is either Visible or Hidden; changes fade the overlay.
type DropView struct {
	Prompt string

	config  DirectoryConfigurer
	scanner ScanStarter
	items   ItemCounter

	visible bool
	fade    fade
}

// NewDropView creates a hidden drop view
func NewDropView(config DirectoryConfigurer, scanner ScanStarter, items ItemCounter) *DropView {
	return &DropView{
		Prompt:  "Drop folders here",
		config:  config,
		scanner: scanner,
		items:   items,
	}
}

// Visible reports whether the view is in the visible state
func (d *DropView) Visible() bool {
	return d.visible
}

// Show fades the view in
func (d *DropView) Show() {
	d.visible = true
	d.fade.set(1)
}

// Hide fades the view out
func (d *DropView) Hide() {
	d.visible = false
	d.fade.set(0)
}

// DragEntered accepts the drag as a copy when the payload holds at least
// one existing directory and shows the view. Anything else is refused
// without touching the visual state.
func (d *DropView) DragEntered(p Payload) DragOperation {
	if len(DirectoryPaths(p)) == 0 {
		debug.Log(debug.UI, "DropView: refusing drag of %d items", len(p))
		return DragNone
	}
	d.Show()
	return DragCopy
}

// DragExited hides the view, unless nothing is loaded yet: then the drop
// zone stays up as the only thing to interact with.
func (d *DropView) DragExited() {
	if d.items.Len() > 0 {
		d.Hide()
	}
}

// PerformDrop hands the dropped directories to the configuration and
// starts a scan if they were accepted.
//
// The drop is reported as handled even when it held no directory.
func (d *DropView) PerformDrop(p Payload) bool {
	paths := DirectoryPaths(p)
	debug.Log(debug.UI, "DropView: drop of %d items, %d directories", len(p), len(paths))
	if d.config.SetLookupDirectories(paths) {
		d.scanner.StartScan()
	}
	return true
}

// Layout paints the drop zone at its current opacity over the full area
func (d *DropView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	alpha, running := d.fade.at(gtx.Now)
	if running {
		gtx.Execute(op.InvalidateCmd{})
	}
	if alpha <= 0 {
		return layout.Dimensions{Size: size}
	}

	defer paint.PushOpacity(gtx.Ops, alpha).Pop()
	paint.FillShape(gtx.Ops, colDropZone, clip.Rect{Max: size}.Op())

	inset := gtx.Dp(24)
	if size.X > 2*inset && size.Y > 2*inset {
		rr := gtx.Dp(12)
		frame := clip.RRect{
			Rect: image.Rect(inset, inset, size.X-inset, size.Y-inset),
			NE:   rr, NW: rr, SE: rr, SW: rr,
		}
		paint.FillShape(gtx.Ops, colDropBorder, clip.Stroke{
			Path:  frame.Path(gtx.Ops),
			Width: float32(gtx.Dp(2)),
		}.Op())
	}

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.H6(th, d.Prompt)
			lbl.Color = colDropText
			return lbl.Layout(gtx)
		})
	})
	return layout.Dimensions{Size: size}
}

// fade animates opacity between 0 and 1. The clock starts on the first
// frame after a change, since Show and Hide run outside of layout.
type fade struct {
	from, to float32
	value    float32
	start    time.Time
}

func (f *fade) set(to float32) {
	if f.to == to {
		return
	}
	f.from = f.value
	f.to = to
	f.start = time.Time{}
}

// at returns the opacity at now and whether the animation is still running
func (f *fade) at(now time.Time) (float32, bool) {
	if f.from == f.to {
		f.value = f.to
		return f.value, false
	}
	if f.start.IsZero() {
		f.start = now
	}
	t := float32(now.Sub(f.start)) / float32(fadeDuration)
	if t >= 1 {
		f.from = f.to
		f.value = f.to
		return f.value, false
	}
	f.value = f.from + (f.to-f.from)*t
	return f.value, true
}
