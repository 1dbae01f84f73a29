package ui

import (
	"testing"
	"time"

	"github.com/justyntemme/photominer/internal/config"
	"github.com/justyntemme/photominer/internal/model"
)

func records(paths ...string) ([]Record, []*model.ImageRecord) {
	var recs []Record
	var raw []*model.ImageRecord
	for _, p := range paths {
		r := model.NewImageRecord(p, time.Now(), true, 0, nil)
		recs = append(recs, r)
		raw = append(raw, r)
	}
	return recs, raw
}

func newTestGallery() *Gallery {
	return NewGallery(nil, NewDropView(&fakeConfig{}, &fakeScanner{}, fakeItems(0)), nil, config.Settings{}, nil, nil)
}

func TestGallerySetRecordsRecyclesCells(t *testing.T) {
	g := newTestGallery()

	recs, first := records("/a.jpg", "/b.jpg", "/c.jpg")
	g.SetRecords(recs)
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	cell0 := g.Cell(0)
	g.Select(2)

	recs, second := records("/d.jpg")
	g.SetRecords(recs)

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if g.Cell(0) != cell0 {
		t.Error("expected the first cell to be reused")
	}
	if g.Selected() != -1 || g.Cell(0).Selected() {
		t.Error("expected selection to reset")
	}
	for _, r := range first {
		if r.Subscribers() != 0 {
			t.Errorf("%s still observed after rebinding", r.Path())
		}
	}
	if second[0].Subscribers() != 1 {
		t.Error("new record not observed")
	}
}

func TestGallerySelect(t *testing.T) {
	g := newTestGallery()
	recs, _ := records("/a.jpg", "/b.jpg", "/c.jpg")
	g.SetRecords(recs)

	g.Select(1)
	g.Select(2)
	if g.Cell(1).Selected() || !g.Cell(2).Selected() {
		t.Error("expected single selection on cell 2")
	}

	g.Select(7)
	if g.Selected() != 2 {
		t.Error("out of range select must be ignored")
	}

	g.Select(-1)
	if g.Selected() != -1 || g.Cell(2).Selected() {
		t.Error("expected selection to clear")
	}
}

func TestGalleryMove(t *testing.T) {
	g := newTestGallery()
	recs, _ := records("/a.jpg", "/b.jpg", "/c.jpg")
	g.SetRecords(recs)

	testCases := []struct {
		delta int
		want  int
	}{
		{1, 0}, // nothing selected starts at the first cell
		{1, 1},
		{5, 2},
		{-1, 1},
		{-9, 0},
	}
	for _, tc := range testCases {
		g.Move(tc.delta)
		if g.Selected() != tc.want {
			t.Errorf("Move(%d): Selected() = %d, want %d", tc.delta, g.Selected(), tc.want)
		}
	}
}

func TestGallerySetSettingsRebinds(t *testing.T) {
	g := newTestGallery()
	rec := model.NewImageRecord("/a.jpg", time.Now(), false, 0, nil)
	g.SetRecords([]Record{rec})

	if g.Cell(0).HasHighlight() {
		t.Fatal("highlight must be off with default settings")
	}
	g.SetSettings(config.Settings{HighlightPicturesWithoutExif: true})
	if !g.Cell(0).HasHighlight() {
		t.Error("expected highlight after enabling the setting")
	}
	if rec.Subscribers() != 1 {
		t.Errorf("expected exactly 1 subscriber after rebinding, got %d", rec.Subscribers())
	}
}
