// Package thumb loads and caches scaled-down picture thumbnails.
package thumb

import (
	"container/list"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/justyntemme/photominer/internal/debug"
)

const queueSize = 256

// Quality selects the scaling filter for thumbnails
type Quality string

const (
	QualityFast Quality = "fast" // Bilinear
	QualityHigh Quality = "high" // Lanczos3, slower
)

// Cache provides an LRU cache for image thumbnails.
// Thumbnails are stored at reduced resolution to minimize memory usage.
type Cache struct {
	mu        sync.Mutex
	cache     map[string]*entry // path -> entry
	lru       *list.List        // front = most recent
	maxSize   int
	maxPixels int
	quality   Quality

	// Callbacks waiting on a path that is queued or loading
	pendingMu sync.Mutex
	pending   map[string][]func(image.Image)
	loadChan  chan string
	stopChan  chan struct{}
	stopOnce  sync.Once
}

type entry struct {
	path      string
	thumbnail image.Image
	element   *list.Element
}

// NewCache creates a thumbnail cache holding at most maxEntries thumbnails
// whose longest edge is at most maxPixels, and starts its loader goroutine.
func NewCache(maxEntries, maxPixels int, quality Quality) *Cache {
	c := &Cache{
		cache:     make(map[string]*entry),
		lru:       list.New(),
		maxSize:   maxEntries,
		maxPixels: maxPixels,
		quality:   quality,
		pending:   make(map[string][]func(image.Image)),
		loadChan:  make(chan string, queueSize),
		stopChan:  make(chan struct{}),
	}
	go c.backgroundLoader()
	return c
}

// Get retrieves a cached thumbnail
func (c *Cache) Get(path string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.cache[path]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(e.element)
	return e.thumbnail, true
}

// Request delivers the thumbnail for path to done. Cached thumbnails are
// delivered synchronously; otherwise the path is queued and done runs on
// the loader goroutine. A request is dropped when the queue is full, and
// Request returns false so the caller can ask again later.
func (c *Cache) Request(path string, done func(image.Image)) bool {
	if img, ok := c.Get(path); ok {
		done(img)
		return true
	}

	c.pendingMu.Lock()
	if waiters, ok := c.pending[path]; ok {
		c.pending[path] = append(waiters, done)
		c.pendingMu.Unlock()
		return true
	}
	c.pending[path] = []func(image.Image){done}
	c.pendingMu.Unlock()

	select {
	case c.loadChan <- path:
		return true
	default:
		debug.Log(debug.THUMB, "queue full, dropping %s", path)
		c.pendingMu.Lock()
		delete(c.pending, path)
		c.pendingMu.Unlock()
		return false
	}
}

// Clear removes all cached thumbnails
func (c *Cache) Clear() {
	c.mu.Lock()
	c.cache = make(map[string]*entry)
	c.lru = list.New()
	c.mu.Unlock()
	debug.Log(debug.THUMB, "cache cleared")
}

// Stop shuts down the background loader
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

// Len returns the current number of cached thumbnails
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Cache) backgroundLoader() {
	for {
		select {
		case <-c.stopChan:
			return
		case path := <-c.loadChan:
			c.load(path)
		}
	}
}

// load decodes and caches the thumbnail for path, then wakes its waiters.
// Waiters are released even when decoding fails so nothing stays pending.
func (c *Cache) load(path string) {
	img, err := c.decode(path)
	if err != nil {
		debug.Log(debug.THUMB, "failed to load %s: %v", path, err)
	} else {
		c.put(path, img)
	}

	c.pendingMu.Lock()
	waiters := c.pending[path]
	delete(c.pending, path)
	c.pendingMu.Unlock()

	if img == nil {
		return
	}
	for _, done := range waiters {
		done(img)
	}
}

func (c *Cache) decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src image.Image
	if isHEIC(path) {
		src, err = decodeHEIC(f)
	} else {
		src, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	thumb := Scale(src, c.maxPixels, c.quality)
	debug.Log(debug.THUMB, "cached %s (original %dx%d, thumb %dx%d)", path,
		src.Bounds().Dx(), src.Bounds().Dy(), thumb.Bounds().Dx(), thumb.Bounds().Dy())
	return thumb, nil
}

func isHEIC(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".heic" || ext == ".heif"
}

// Scale shrinks src so its longest edge is at most maxPixels.
// Images already small enough are returned unchanged.
func Scale(src image.Image, maxPixels int, quality Quality) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxPixels <= 0 || (width <= maxPixels && height <= maxPixels) {
		return src
	}
	if quality == QualityHigh {
		return resize.Thumbnail(uint(maxPixels), uint(maxPixels), src, resize.Lanczos3)
	}

	var scale float64
	if width > height {
		scale = float64(maxPixels) / float64(width)
	} else {
		scale = float64(maxPixels) / float64(height)
	}
	newWidth := max(1, int(float64(width)*scale))
	newHeight := max(1, int(float64(height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// put adds a thumbnail, evicting the least recently used entries at capacity
func (c *Cache) put(path string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.cache[path]; ok {
		e.thumbnail = img
		c.lru.MoveToFront(e.element)
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*entry)
		delete(c.cache, old.path)
		c.lru.Remove(oldest)
		debug.Log(debug.THUMB, "evicted %s", old.path)
	}

	e := &entry{path: path, thumbnail: img}
	e.element = c.lru.PushFront(e)
	c.cache[path] = e
}
