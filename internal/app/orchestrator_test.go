package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gioui.org/io/pointer"

	"github.com/justyntemme/photominer/internal/config"
	"github.com/justyntemme/photominer/internal/model"
	"github.com/justyntemme/photominer/internal/platform"
	"github.com/justyntemme/photominer/internal/scan"
	"github.com/justyntemme/photominer/internal/store"
	"github.com/justyntemme/photominer/internal/ui"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	cfg := config.NewManagerAt(filepath.Join(t.TempDir(), "config.json"))
	if err := cfg.Load(); err != nil {
		t.Fatal(err)
	}
	o := newOrchestrator(cfg, store.NewDB())
	t.Cleanup(o.thumbs.Stop)
	return o
}

func picturesDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("not really a jpeg"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testRecords(paths ...string) []*model.ImageRecord {
	var recs []*model.ImageRecord
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range paths {
		recs = append(recs, model.NewImageRecord(p, base.Add(time.Duration(i)*time.Hour), true, 1000, nil))
	}
	return recs
}

func TestStartScanWithoutDirectoriesShowsDropView(t *testing.T) {
	o := newTestOrchestrator(t)
	o.StartScan()

	if !o.drop.Visible() {
		t.Error("expected the drop view to be visible")
	}
	if o.gen != 0 || o.scanning {
		t.Error("no scan should have been requested")
	}
}

func TestDropStartsScan(t *testing.T) {
	o := newTestOrchestrator(t)
	dir := picturesDir(t, "a.jpg")

	o.handleDrag(platform.DragEvent{Kind: platform.Drop, Paths: []string{dir, filepath.Join(dir, "a.jpg")}})

	select {
	case req := <-o.scanner.RequestChan:
		if req.Op != scan.ScanDirs || req.Gen != 1 {
			t.Errorf("unexpected request %+v", req)
		}
		if len(req.Dirs) != 1 || req.Dirs[0] != dir {
			t.Errorf("request dirs = %v, want [%s]", req.Dirs, dir)
		}
	default:
		t.Fatal("drop did not request a scan")
	}
	if !o.scanning {
		t.Error("expected scanning state")
	}
	if got := o.config.LookupDirectories(); len(got) != 1 || got[0] != dir {
		t.Errorf("LookupDirectories() = %v", got)
	}
}

func TestDropOfFilesOnlyKeepsState(t *testing.T) {
	o := newTestOrchestrator(t)
	dir := picturesDir(t, "a.jpg")

	o.handleDrag(platform.DragEvent{Kind: platform.Drop, Paths: []string{filepath.Join(dir, "a.jpg")}})

	if len(o.scanner.RequestChan) != 0 {
		t.Error("a drop without directories must not scan")
	}
	if len(o.config.LookupDirectories()) != 0 {
		t.Error("config must be unchanged")
	}
}

func TestHandleScanResponse(t *testing.T) {
	o := newTestOrchestrator(t)
	o.gen = 2
	o.scanning = true
	o.drop.Show()

	// Stale generation
	o.handleScanResponse(scan.Response{Gen: 1, Records: testRecords("/old.jpg")})
	if o.items.Len() != 0 || !o.scanning {
		t.Fatal("stale response must be ignored")
	}

	o.handleScanResponse(scan.Response{Gen: 2, Cancelled: true})
	if !o.scanning {
		t.Fatal("cancelled response must be ignored")
	}

	o.handleScanResponse(scan.Response{Gen: 2, Records: testRecords("/a.jpg", "/b.jpg")})
	if o.scanning {
		t.Error("expected scan to be finished")
	}
	if o.items.Len() != 2 || o.gallery.Len() != 2 {
		t.Errorf("items=%d cells=%d, want 2", o.items.Len(), o.gallery.Len())
	}
	if o.drop.Visible() {
		t.Error("drop view must hide once pictures are loaded")
	}
	if o.gallery.Status != "2 pictures (2.0 kB)" {
		t.Errorf("Status = %q", o.gallery.Status)
	}

	o.gen = 3
	o.handleScanResponse(scan.Response{Gen: 3})
	if !o.drop.Visible() {
		t.Error("drop view must show when a scan finds nothing")
	}
}

func TestHandleProgress(t *testing.T) {
	o := newTestOrchestrator(t)
	o.gen = 1
	o.scanning = true

	o.handleProgress(scan.Progress{Gen: 1, Found: 150})
	if o.gallery.Status != "Scanning... 150 pictures found" {
		t.Errorf("Status = %q", o.gallery.Status)
	}
	o.handleProgress(scan.Progress{Gen: 0, Found: 999})
	if o.found != 150 {
		t.Error("progress of an old scan must be ignored")
	}
}

func TestScanEndToEnd(t *testing.T) {
	o := newTestOrchestrator(t)
	dir := picturesDir(t, "a.jpg", "b.png", "notes.txt")
	go o.scanner.Start()
	t.Cleanup(func() { close(o.scanner.RequestChan) })

	if !o.config.SetLookupDirectories([]string{dir}) {
		t.Fatal("SetLookupDirectories refused a temp dir")
	}
	o.StartScan()

	select {
	case resp := <-o.scanner.ResponseChan:
		o.handleScanResponse(resp)
	case <-time.After(10 * time.Second):
		t.Fatal("scan did not finish")
	}

	if o.gallery.Len() != 2 {
		t.Fatalf("expected 2 cells, got %d", o.gallery.Len())
	}
	for i := 0; i < o.gallery.Len(); i++ {
		if !o.gallery.Cell(i).HasHighlight() {
			t.Errorf("cell %d: pictures without EXIF must be highlighted by default", i)
		}
	}
}

func TestClickSelects(t *testing.T) {
	o := newTestOrchestrator(t)
	o.gen = 1
	o.handleScanResponse(scan.Response{Gen: 1, Records: testRecords("/a.jpg", "/b.jpg")})

	o.Clicked(o.gallery.Cell(1), pointer.Event{Buttons: pointer.ButtonPrimary})
	if o.gallery.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", o.gallery.Selected())
	}
	if path, ok := o.selectedPath(); !ok || path != "/b.jpg" {
		t.Errorf("selectedPath() = %q, %v", path, ok)
	}
}

func TestToggleActions(t *testing.T) {
	o := newTestOrchestrator(t)
	o.gen = 1
	rec := model.NewImageRecord("/a.jpg", time.Date(2017, 3, 14, 15, 9, 0, 0, time.UTC), false, 0, nil)
	o.handleScanResponse(scan.Response{Gen: 1, Records: []*model.ImageRecord{rec}})

	cell := o.gallery.Cell(0)
	if !cell.HasHighlight() || cell.Label() != "a.jpg" {
		t.Fatalf("unexpected initial state: highlight=%v label=%q", cell.HasHighlight(), cell.Label())
	}

	o.handleUIEvent(ui.UIEvent{Action: ui.ActionToggleHighlight})
	if cell.HasHighlight() {
		t.Error("highlight should be off after toggling")
	}
	o.handleUIEvent(ui.UIEvent{Action: ui.ActionToggleDateLabel})
	if cell.Label() != "Mar 14, 2017, 3:09 PM" {
		t.Errorf("Label() = %q", cell.Label())
	}
	if s := o.config.Snapshot(); s.HighlightPicturesWithoutExif || !s.CreationDateAsLabel {
		t.Errorf("config not updated: %+v", s)
	}
}

func TestDropWithoutFoldersNotifies(t *testing.T) {
	o := newTestOrchestrator(t)
	dir := picturesDir(t, "a.jpg")

	o.handleDrag(platform.DragEvent{Kind: platform.Drop, Paths: []string{filepath.Join(dir, "a.jpg")}})

	msg, kind, ok := o.gallery.Toast.Current(time.Now())
	if !ok || kind != ui.ToastInfo || msg != "Only folders can be dropped" {
		t.Errorf("Toast = (%q, %v, %v)", msg, kind, ok)
	}
}
