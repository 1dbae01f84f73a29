package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastKind indicates the severity of a toast message
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastError
)

// toastDuration is how long toasts are displayed
const toastDuration = 3 * time.Second

// Toast is a transient message shown over the bottom of the gallery.
// Show may be called from any goroutine.
type Toast struct {
	mu        sync.Mutex
	message   string
	kind      ToastKind
	expiresAt time.Time
}

// Show displays message until toastDuration after now
func (t *Toast) Show(message string, kind ToastKind, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = message
	t.kind = kind
	t.expiresAt = now.Add(toastDuration)
}

// Current returns the message visible at now, if any
func (t *Toast) Current(now time.Time) (string, ToastKind, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.message == "" || !now.Before(t.expiresAt) {
		return "", ToastInfo, false
	}
	return t.message, t.kind, true
}

func toastColors(kind ToastKind) (bg, fg color.NRGBA) {
	switch kind {
	case ToastError:
		return colToastError, colToastLightText
	case ToastWarning:
		return colToastWarning, colToastDarkText
	}
	return colToastInfo, colToastLightText
}

// Layout draws the toast at the bottom center
func (t *Toast) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	message, kind, ok := t.Current(gtx.Now)
	if !ok {
		return layout.Dimensions{}
	}
	t.mu.Lock()
	expiresAt := t.expiresAt
	t.mu.Unlock()
	gtx.Execute(op.InvalidateCmd{At: expiresAt})

	bg, fg := toastColors(kind)
	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(40), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(500))

			macro := op.Record(gtx.Ops)
			dims := layout.Inset{Top: 12, Bottom: 12, Left: 16, Right: 16}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(th, message)
				lbl.Color = fg
				return lbl.Layout(gtx)
			})
			call := macro.Stop()

			rr := gtx.Dp(8)
			paint.FillShape(gtx.Ops, bg, clip.RRect{
				Rect: image.Rectangle{Max: dims.Size},
				NE:   rr, NW: rr, SE: rr, SW: rr,
			}.Op(gtx.Ops))
			call.Add(gtx.Ops)
			return dims
		})
	})
}
