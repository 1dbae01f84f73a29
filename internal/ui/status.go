package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// StatusText summarizes the loaded collection for the status bar
func StatusText(count int, totalBytes int64, scanning bool) string {
	if scanning {
		if count > 0 {
			return fmt.Sprintf("Scanning... %s pictures found", humanize.Comma(int64(count)))
		}
		return "Scanning..."
	}
	switch count {
	case 0:
		return "No pictures loaded"
	case 1:
		return fmt.Sprintf("1 picture (%s)", humanize.Bytes(uint64(totalBytes)))
	}
	return fmt.Sprintf("%s pictures (%s)", humanize.Comma(int64(count)), humanize.Bytes(uint64(totalBytes)))
}
