package model

import (
	"image"
	"testing"
	"time"
)

type fakeSource struct {
	requests []string
	done     []func(image.Image)
	refuse   bool // Simulates a full loader queue
}

func (f *fakeSource) Request(path string, done func(image.Image)) bool {
	f.requests = append(f.requests, path)
	if f.refuse {
		return false
	}
	f.done = append(f.done, done)
	return true
}

func TestNewImageRecord(t *testing.T) {
	created := time.Date(2017, 3, 14, 10, 30, 0, 0, time.UTC)
	r := NewImageRecord("/photos/IMG_0001.jpg", created, true, 2048, nil)

	if r.Name() != "IMG_0001.jpg" {
		t.Errorf("Name() = %q, want %q", r.Name(), "IMG_0001.jpg")
	}
	if !r.CreationDate().Equal(created) {
		t.Errorf("CreationDate() = %v, want %v", r.CreationDate(), created)
	}
	if !r.HasMetadata() {
		t.Error("expected HasMetadata() to be true")
	}
	if r.Thumbnail() != nil {
		t.Error("expected no thumbnail before loading")
	}
}

func TestSetThumbnailRequestsOnce(t *testing.T) {
	src := &fakeSource{}
	r := NewImageRecord("/photos/a.jpg", time.Now(), false, 0, src)

	r.SetThumbnail()
	r.SetThumbnail()

	if len(src.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(src.requests))
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.done[0](img)
	if r.Thumbnail() != img {
		t.Error("expected thumbnail to be stored after load")
	}
}

func TestSetThumbnailRetriesRefusedRequest(t *testing.T) {
	src := &fakeSource{refuse: true}
	r := NewImageRecord("/photos/a.jpg", time.Now(), false, 0, src)

	r.SetThumbnail()
	r.SetThumbnail()
	if len(src.requests) != 2 {
		t.Fatalf("expected a refused request to be issued again, got %d requests", len(src.requests))
	}

	src.refuse = false
	r.SetThumbnail()
	r.SetThumbnail()
	if len(src.requests) != 3 || len(src.done) != 1 {
		t.Fatalf("expected exactly one accepted request, got %d requests, %d accepted", len(src.requests), len(src.done))
	}
}

func TestSetThumbnailWithoutSource(t *testing.T) {
	r := NewImageRecord("/photos/a.jpg", time.Now(), false, 0, nil)
	r.SetThumbnail()
	if r.Thumbnail() != nil {
		t.Error("expected no thumbnail without a source")
	}
}

func TestSubscribeAndCancel(t *testing.T) {
	r := NewImageRecord("/photos/a.jpg", time.Now(), false, 0, nil)

	var calls int
	cancel := r.Subscribe(func(image.Image) { calls++ })
	if r.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", r.Subscribers())
	}

	r.UpdateThumbnail(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}

	cancel()
	cancel()
	if r.Subscribers() != 0 {
		t.Errorf("expected no subscribers after cancel, got %d", r.Subscribers())
	}

	r.UpdateThumbnail(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if calls != 1 {
		t.Errorf("cancelled subscriber was notified, calls=%d", calls)
	}
}

func TestCollection(t *testing.T) {
	c := NewCollection()
	if c.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", c.Len())
	}
	if c.At(0) != nil {
		t.Error("expected nil for out of range index")
	}

	a := NewImageRecord("/a.jpg", time.Now(), true, 100, nil)
	b := NewImageRecord("/b.jpg", time.Now(), true, 250, nil)
	recs := []*ImageRecord{a, b}
	c.Replace(recs)
	recs[0] = nil

	if c.Len() != 2 {
		t.Errorf("expected 2 records, got %d", c.Len())
	}
	if c.At(0) != a || c.At(1) != b {
		t.Error("records out of order or aliased to caller slice")
	}
	if c.TotalSize() != 350 {
		t.Errorf("TotalSize() = %d, want 350", c.TotalSize())
	}
}
