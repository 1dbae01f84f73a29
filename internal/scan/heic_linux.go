//go:build linux

package scan

import (
	"io"

	"github.com/jdeng/goheif"
)

// heicExif returns the raw EXIF block stored in a HEIC container
func heicExif(ra io.ReaderAt) ([]byte, error) {
	return goheif.ExtractExif(ra)
}
