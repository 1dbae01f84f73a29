// Package model holds the image records shown in the gallery.
package model

import (
	"image"
	"path/filepath"
	"sync"
	"time"
)

// ThumbnailSource produces thumbnails asynchronously. done may be called
// from any goroutine. Request returns false when the request was not taken.
type ThumbnailSource interface {
	Request(path string, done func(image.Image)) bool
}

// ImageRecord represents one picture found during a scan
type ImageRecord struct {
	path         string
	name         string
	creationDate time.Time
	hasMetadata  bool
	size         int64

	source ThumbnailSource

	mu          sync.Mutex
	thumbnail   image.Image
	requested   bool
	nextSubID   int
	subscribers map[int]func(image.Image)
}

// NewImageRecord creates a record. source may be nil, in which case
// SetThumbnail does nothing and the record renders without an image.
func NewImageRecord(path string, creationDate time.Time, hasMetadata bool, size int64, source ThumbnailSource) *ImageRecord {
	return &ImageRecord{
		path:         path,
		name:         filepath.Base(path),
		creationDate: creationDate,
		hasMetadata:  hasMetadata,
		size:         size,
		source:       source,
	}
}

func (r *ImageRecord) Path() string            { return r.path }
func (r *ImageRecord) Name() string            { return r.name }
func (r *ImageRecord) CreationDate() time.Time { return r.creationDate }
func (r *ImageRecord) HasMetadata() bool       { return r.hasMetadata }
func (r *ImageRecord) Size() int64             { return r.size }

// Thumbnail returns the current thumbnail or nil
func (r *ImageRecord) Thumbnail() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.thumbnail
}

// SetThumbnail asks the thumbnail source to generate the thumbnail.
// Once a request is taken, later calls do nothing; a refused request is
// issued again on the next call.
func (r *ImageRecord) SetThumbnail() {
	r.mu.Lock()
	if r.requested || r.source == nil {
		r.mu.Unlock()
		return
	}
	r.requested = true
	r.mu.Unlock()

	if !r.source.Request(r.path, r.UpdateThumbnail) {
		r.mu.Lock()
		r.requested = false
		r.mu.Unlock()
	}
}

// UpdateThumbnail stores img and notifies subscribers
func (r *ImageRecord) UpdateThumbnail(img image.Image) {
	r.mu.Lock()
	r.thumbnail = img
	subs := make([]func(image.Image), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(img)
	}
}

// Subscribe registers fn to be called on every thumbnail update.
// The returned cancel func removes it and may be called more than once.
func (r *ImageRecord) Subscribe(fn func(image.Image)) (cancel func()) {
	r.mu.Lock()
	if r.subscribers == nil {
		r.subscribers = make(map[int]func(image.Image))
	}
	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subscribers, id)
		r.mu.Unlock()
	}
}

// Subscribers returns the number of live subscriptions
func (r *ImageRecord) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
