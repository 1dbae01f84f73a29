package ui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/photominer/internal/config"
	"github.com/justyntemme/photominer/internal/debug"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionRescan
	ActionOpen
	ActionReveal
	ActionNext
	ActionPrevious
	ActionClearSelection
	ActionToggleDateLabel
	ActionToggleHighlight
)

// UIEvent is returned from Layout when a shortcut fired
type UIEvent struct {
	Action UIAction
}

// Gallery lays out thumbnail cells in a grid with the drop view on top
type Gallery struct {
	Theme  *material.Theme
	Drop   *DropView
	Status string
	Toast  Toast

	// ItemSize is the thumbnail edge in dp
	ItemSize unit.Dp

	delegate   CellDelegate
	settings   config.Settings
	invalidate func()
	hotkeys    *config.HotkeyMatcher

	cells    []*ThumbnailCell
	selected int
	list     layout.List
	keyTag   int
}

// NewGallery creates an empty gallery
func NewGallery(th *material.Theme, drop *DropView, delegate CellDelegate, settings config.Settings,
	hotkeys *config.HotkeyMatcher, invalidate func()) *Gallery {
	return &Gallery{
		Theme:      th,
		Drop:       drop,
		ItemSize:   160,
		delegate:   delegate,
		settings:   settings,
		invalidate: invalidate,
		hotkeys:    hotkeys,
		selected:   -1,
		list:       layout.List{Axis: layout.Vertical},
	}
}

// SetRecords binds recs to cells, reusing the existing ones. Surplus cells
// are unbound so they stop observing their old records.
func (g *Gallery) SetRecords(recs []Record) {
	for i := len(recs); i < len(g.cells); i++ {
		g.cells[i].Unbind()
	}
	if len(g.cells) > len(recs) {
		g.cells = g.cells[:len(recs)]
	}
	for i, rec := range recs {
		if i >= len(g.cells) {
			g.cells = append(g.cells, NewThumbnailCell(g.delegate, g.settings, g.invalidate))
		}
		cell := g.cells[i]
		cell.Index = i
		cell.SetSelected(false)
		cell.Bind(rec)
	}
	g.selected = -1
	debug.Log(debug.UI, "Gallery: bound %d records", len(recs))
}

// SetSettings rebinds every cell with new display settings
func (g *Gallery) SetSettings(s config.Settings) {
	g.settings = s
	for _, cell := range g.cells {
		rec := cell.Record()
		cell.settings = s
		cell.Bind(rec)
	}
}

// Len returns the number of cells
func (g *Gallery) Len() int { return len(g.cells) }

// Cell returns the cell at i, or nil when out of range
func (g *Gallery) Cell(i int) *ThumbnailCell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return g.cells[i]
}

// Selected returns the selected index or -1
func (g *Gallery) Selected() int { return g.selected }

// Select makes i the only selected cell; -1 clears the selection
func (g *Gallery) Select(i int) {
	if i < -1 || i >= len(g.cells) {
		return
	}
	if old := g.Cell(g.selected); old != nil {
		old.SetSelected(false)
	}
	g.selected = i
	if cell := g.Cell(i); cell != nil {
		cell.SetSelected(true)
	}
}

// Move shifts the selection by delta, clamped to the grid
func (g *Gallery) Move(delta int) {
	if len(g.cells) == 0 {
		return
	}
	next := g.selected + delta
	if g.selected < 0 {
		next = 0
	}
	next = max(0, min(next, len(g.cells)-1))
	g.Select(next)
}

// Layout draws the grid and status bar with the drop view and toast on top
func (g *Gallery) Layout(gtx layout.Context) UIEvent {
	evt := g.processKeys(gtx)

	paint.FillShape(gtx.Ops, colBackground, clip.Rect{Max: gtx.Constraints.Max}.Op())

	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &g.keyTag)
	area.Pop()

	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Flexed(1, g.layoutGrid),
				layout.Rigid(g.layoutStatus),
			)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return g.Drop.Layout(gtx, g.Theme)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return g.Toast.Layout(gtx, g.Theme)
		}),
	)
	return evt
}

func (g *Gallery) processKeys(gtx layout.Context) UIEvent {
	if !gtx.Focused(&g.keyTag) {
		gtx.Execute(key.FocusCmd{Tag: &g.keyTag})
	}
	if g.hotkeys == nil {
		return UIEvent{}
	}

	actions := []struct {
		hk     config.Hotkey
		action UIAction
	}{
		{g.hotkeys.Rescan, ActionRescan},
		{g.hotkeys.Open, ActionOpen},
		{g.hotkeys.Reveal, ActionReveal},
		{g.hotkeys.Next, ActionNext},
		{g.hotkeys.Previous, ActionPrevious},
		{g.hotkeys.ClearSelection, ActionClearSelection},
		{g.hotkeys.ToggleDateLabel, ActionToggleDateLabel},
		{g.hotkeys.ToggleHighlight, ActionToggleHighlight},
	}

	var filters []event.Filter
	for _, a := range actions {
		if !a.hk.IsEmpty() {
			filters = append(filters, a.hk.Filter(&g.keyTag))
		}
	}

	evt := UIEvent{}
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		for _, a := range actions {
			if a.hk.Matches(e) {
				debug.Log(debug.UI_EVENT, "Gallery: hotkey %s", a.hk)
				evt.Action = a.action
				break
			}
		}
	}
	return evt
}

// layoutGrid lays cells out in rows that fill the available width
func (g *Gallery) layoutGrid(gtx layout.Context) layout.Dimensions {
	itemSize := gtx.Dp(g.ItemSize)
	gap := gtx.Dp(8)
	cols := max(1, (gtx.Constraints.Max.X-gap)/(itemSize+gap))
	rows := (len(g.cells) + cols - 1) / cols

	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return g.list.Layout(gtx, rows, func(gtx layout.Context, row int) layout.Dimensions {
			var children []layout.FlexChild
			start := row * cols
			end := min(start+cols, len(g.cells))
			for i := start; i < end; i++ {
				cell := g.cells[i]
				children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Right: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return cell.Layout(gtx, g.Theme, itemSize)
					})
				}))
			}
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
		})
	})
}

func (g *Gallery) layoutStatus(gtx layout.Context) layout.Dimensions {
	height := gtx.Dp(28)
	size := image.Pt(gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, colStatusBar, clip.Rect{Max: size}.Op())

	gtx.Constraints = layout.Exact(size)
	layout.Inset{Left: unit.Dp(10), Top: unit.Dp(5)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Caption(g.Theme, g.Status)
		lbl.Color = colStatusText
		lbl.MaxLines = 1
		return lbl.Layout(gtx)
	})
	return layout.Dimensions{Size: size}
}
