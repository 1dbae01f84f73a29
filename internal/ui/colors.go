package ui

import "image/color"

// Thumbnail cell palette
var (
	colCellFrame          = color.NRGBA{R: 242, G: 242, B: 242, A: 255} // light gray
	colCellFrameSelected  = color.NRGBA{R: 69, G: 166, B: 224, A: 255}  // blue
	colCellBorder         = color.NRGBA{R: 255, G: 217, B: 224, A: 255} // light pink
	colCellBorderSelected = color.NRGBA{R: 64, G: 148, B: 199, A: 255}  // dark blue
	colCellText           = color.NRGBA{R: 85, G: 85, B: 85, A: 255}    // dark gray
	colCellTextSelected   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window chrome
var (
	colBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colStatusBar  = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colStatusText = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colDropZone   = color.NRGBA{R: 255, G: 255, B: 255, A: 230} // white at 0.9
	colDropText   = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	colDropBorder = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// Toasts
var (
	colToastInfo      = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
	colToastWarning   = color.NRGBA{R: 220, G: 160, B: 40, A: 240}
	colToastError     = color.NRGBA{R: 200, G: 50, B: 50, A: 240}
	colToastLightText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colToastDarkText  = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)
