//go:build !linux

package thumb

import (
	"errors"
	"image"
	"io"
)

var errNoHEIC = errors.New("HEIC decoding not supported on this platform")

// decodeHEIC is a stub where the HEIC decoder is not built
func decodeHEIC(r io.Reader) (image.Image, error) {
	return nil, errNoHEIC
}

// heicSupported returns whether HEIC decoding is available on this platform
func heicSupported() bool {
	return false
}
