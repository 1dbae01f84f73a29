package scan

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// imageExts lists the extensions picked up by a scan
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// IsImage reports whether path has a picture extension
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// ReadMetadata reports whether the file carries EXIF data and its creation
// date. The EXIF original timestamp wins; modTime is used otherwise.
func ReadMetadata(path string, modTime time.Time) (hasExif bool, created time.Time) {
	f, err := os.Open(path)
	if err != nil {
		return false, modTime
	}
	defer f.Close()

	var r io.Reader = f
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".heic" || ext == ".heif" {
		raw, err := heicExif(f)
		if err != nil {
			return false, modTime
		}
		r = bytes.NewReader(raw)
	}

	x, err := exif.Decode(r)
	if err != nil {
		return false, modTime
	}
	if t, err := x.DateTime(); err == nil && !t.IsZero() {
		return true, t
	}
	return true, modTime
}
