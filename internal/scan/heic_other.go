//go:build !linux

package scan

import (
	"errors"
	"io"
)

// heicExif is unavailable where the HEIC reader is not built
func heicExif(ra io.ReaderAt) ([]byte, error) {
	return nil, errors.New("HEIC metadata not supported on this platform")
}
