package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/photominer/internal/config"
	"github.com/justyntemme/photominer/internal/debug"
)

// creationDateLayout renders a medium date with a short time
const creationDateLayout = "Jan 2, 2006, 3:04 PM"

// Record is the picture a cell displays
type Record interface {
	Name() string
	CreationDate() time.Time
	HasMetadata() bool
	SetThumbnail()
	Thumbnail() image.Image
	Subscribe(fn func(image.Image)) (cancel func())
}

// CellDelegate receives pointer presses on a cell
type CellDelegate interface {
	Clicked(cell *ThumbnailCell, e pointer.Event)
	RightClicked(cell *ThumbnailCell, e pointer.Event)
}

// CellStyle is what a cell paints for its current state
type CellStyle struct {
	Background  color.NRGBA
	Border      color.NRGBA
	BorderWidth unit.Dp
	Text        color.NRGBA
}

// ThumbnailCell renders one record as a selectable tile
type ThumbnailCell struct {
	// Index is the cell's position in the gallery
	Index int

	delegate   CellDelegate
	settings   config.Settings
	invalidate func()

	record    Record
	cancel    func()
	label     string
	selected  bool
	hasBorder bool

	mu      sync.Mutex
	bindGen uint64 // Bumped on every bind and unbind
	thumb   image.Image
	imgOp   paint.ImageOp
	opThumb image.Image // thumbnail imgOp was built from
}

// NewThumbnailCell creates an unbound cell. invalidate is called from any
// goroutine when the bound record's thumbnail changes; it may be nil.
func NewThumbnailCell(delegate CellDelegate, settings config.Settings, invalidate func()) *ThumbnailCell {
	return &ThumbnailCell{
		delegate:   delegate,
		settings:   settings,
		invalidate: invalidate,
	}
}

// Bind attaches the cell to rec, replacing any previous record
func (c *ThumbnailCell) Bind(rec Record) {
	c.Unbind()
	if rec == nil {
		return
	}
	c.record = rec

	rec.SetThumbnail()
	c.hasBorder = c.settings.HighlightPicturesWithoutExif && !rec.HasMetadata()

	c.label = rec.Name()
	if c.settings.CreationDateAsLabel {
		c.label = rec.CreationDate().Format(creationDateLayout)
	}

	c.mu.Lock()
	gen := c.bindGen
	c.mu.Unlock()
	c.cancel = rec.Subscribe(func(img image.Image) { c.setThumbnail(gen, img) })
	c.setThumbnail(gen, rec.Thumbnail())
}

// Unbind drops the record and stops observing its thumbnail
func (c *ThumbnailCell) Unbind() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.record = nil
	c.label = ""
	c.hasBorder = false

	c.mu.Lock()
	c.bindGen++
	c.thumb = nil
	c.mu.Unlock()
}

// setThumbnail runs on whatever goroutine produced the thumbnail. Updates
// for a replaced binding can arrive after its cancel and are ignored.
func (c *ThumbnailCell) setThumbnail(gen uint64, img image.Image) {
	c.mu.Lock()
	if gen != c.bindGen {
		c.mu.Unlock()
		return
	}
	c.thumb = img
	c.mu.Unlock()
	if img != nil && c.invalidate != nil {
		c.invalidate()
	}
}

// ensureThumbnail asks the record again for a thumbnail while none has
// arrived. The record ignores the call once a request was taken.
func (c *ThumbnailCell) ensureThumbnail() {
	if c.record == nil {
		return
	}
	c.mu.Lock()
	missing := c.thumb == nil
	c.mu.Unlock()
	if missing {
		c.record.SetThumbnail()
	}
}

// Record returns the bound record or nil
func (c *ThumbnailCell) Record() Record { return c.record }

// Label returns the text shown under the thumbnail
func (c *ThumbnailCell) Label() string { return c.label }

// Selected reports the selection state
func (c *ThumbnailCell) Selected() bool { return c.selected }

// HasHighlight reports whether the missing-metadata border is shown
func (c *ThumbnailCell) HasHighlight() bool { return c.hasBorder }

// SetSelected updates the selection state
func (c *ThumbnailCell) SetSelected(selected bool) {
	c.selected = selected
}

// Style returns the colors for the current state
func (c *ThumbnailCell) Style() CellStyle {
	return cellStyle(c.selected, c.hasBorder)
}

// cellStyle maps selection and highlight to colors. Selection decides every
// color; the highlight only switches the border on.
func cellStyle(selected, highlight bool) CellStyle {
	s := CellStyle{
		Background: colCellFrame,
		Border:     colCellBorder,
		Text:       colCellText,
	}
	if selected {
		s.Background = colCellFrameSelected
		s.Border = colCellBorderSelected
		s.Text = colCellTextSelected
	}
	if highlight {
		s.BorderWidth = 2
	}
	return s
}

// handlePress forwards a press to the delegate
func (c *ThumbnailCell) handlePress(e pointer.Event) {
	if c.delegate == nil {
		return
	}
	debug.Log(debug.UI_EVENT, "cell %d: press buttons=%v", c.Index, e.Buttons)
	switch {
	case e.Buttons.Contain(pointer.ButtonSecondary):
		c.delegate.RightClicked(c, e)
	case e.Buttons.Contain(pointer.ButtonPrimary):
		c.delegate.Clicked(c, e)
	}
}

// Layout draws the cell as a size x (size+label) tile
func (c *ThumbnailCell) Layout(gtx layout.Context, th *material.Theme, size int) layout.Dimensions {
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: c, Kinds: pointer.Press})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			c.handlePress(e)
		}
	}

	// Only laid out cells retry, so visible pictures win a full loader queue
	c.ensureThumbnail()

	style := c.Style()
	labelHeight := gtx.Dp(24)
	rect := image.Rect(0, 0, size, size+labelHeight)

	rr := gtx.Dp(4)
	frame := clip.RRect{Rect: rect, NE: rr, NW: rr, SE: rr, SW: rr}
	paint.FillShape(gtx.Ops, style.Background, frame.Op(gtx.Ops))
	if style.BorderWidth > 0 {
		paint.FillShape(gtx.Ops, style.Border, clip.Stroke{
			Path:  frame.Path(gtx.Ops),
			Width: float32(gtx.Dp(style.BorderWidth)),
		}.Op())
	}

	// Thumbnail
	tgtx := gtx
	tgtx.Constraints = layout.Exact(image.Pt(size, size))
	layout.UniformInset(unit.Dp(6)).Layout(tgtx, func(gtx layout.Context) layout.Dimensions {
		imgOp, ok := c.imageOp()
		if !ok {
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}
		return widget.Image{Src: imgOp, Fit: widget.Contain, Position: layout.Center}.Layout(gtx)
	})

	// Label
	off := op.Offset(image.Pt(0, size)).Push(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints = layout.Exact(image.Pt(size, labelHeight))
	layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(lgtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, c.label)
		lbl.Color = style.Text
		lbl.Alignment = text.Middle
		lbl.MaxLines = 1
		return lbl.Layout(gtx)
	})
	off.Pop()

	area := clip.Rect(rect).Push(gtx.Ops)
	event.Op(gtx.Ops, c)
	area.Pop()

	return layout.Dimensions{Size: rect.Size()}
}

// imageOp returns the paint op for the current thumbnail, rebuilding it
// only when the thumbnail changed
func (c *ThumbnailCell) imageOp() (paint.ImageOp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.thumb == nil {
		return paint.ImageOp{}, false
	}
	if c.thumb != c.opThumb {
		c.imgOp = paint.NewImageOp(c.thumb)
		c.opThumb = c.thumb
	}
	return c.imgOp, true
}
