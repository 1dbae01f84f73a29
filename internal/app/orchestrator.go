package app

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/photominer/internal/config"
	"github.com/justyntemme/photominer/internal/debug"
	"github.com/justyntemme/photominer/internal/model"
	"github.com/justyntemme/photominer/internal/platform"
	"github.com/justyntemme/photominer/internal/scan"
	"github.com/justyntemme/photominer/internal/store"
	"github.com/justyntemme/photominer/internal/thumb"
	"github.com/justyntemme/photominer/internal/ui"
)

type Orchestrator struct {
	window  *app.Window
	config  *config.Manager
	store   *store.DB
	thumbs  *thumb.Cache
	scanner *scan.Scanner
	watcher *DirectoryWatcher
	items   *model.Collection
	drop    *ui.DropView
	gallery *ui.Gallery

	// uiQueue carries work from background goroutines to the frame loop
	uiQueue chan func()

	gen      int64 // Generation of the latest scan request
	scanning bool
	found    int64
	clicks   clickTracker
	debug    bool
}

func NewOrchestrator(debug bool) *Orchestrator {
	cfg := config.NewManager()
	if err := cfg.Load(); err != nil {
		log.Printf("Failed to load config: %v", err)
	}

	o := newOrchestrator(cfg, store.NewDB())
	o.window = new(app.Window)
	o.debug = debug
	if err := cfg.ParseError(); err != nil {
		log.Printf("Config has errors, using defaults: %v", err)
		o.notify("Config has errors, using defaults", ui.ToastWarning)
	}
	return o
}

// newOrchestrator wires everything but the window
func newOrchestrator(cfg *config.Manager, db *store.DB) *Orchestrator {
	c := cfg.Get()
	o := &Orchestrator{
		config:  cfg,
		store:   db,
		thumbs:  thumb.NewCache(c.Thumbnail.MaxEntries, c.Thumbnail.MaxPixels, thumb.Quality(c.Thumbnail.Quality)),
		items:   model.NewCollection(),
		uiQueue: make(chan func(), 64),
	}
	o.scanner = scan.NewScanner(db, o.thumbs)
	o.drop = ui.NewDropView(cfg, o, o.items)

	o.gallery = ui.NewGallery(material.NewTheme(), o.drop, o, cfg.Snapshot(), config.NewHotkeyMatcher(c.Hotkeys), o.invalidate)
	return o
}

func (o *Orchestrator) Run(dirs []string) error {
	if o.debug {
		log.Println("Starting PhotoMiner in DEBUG mode")
	}

	if err := o.store.Open(store.DefaultPath()); err != nil {
		log.Printf("Failed to open DB: %v", err)
		o.notify("Metadata cache unavailable, scans will be slower", ui.ToastWarning)
	}
	defer o.store.Close()
	defer o.thumbs.Stop()

	o.window.Option(app.Title("PhotoMiner"), app.Size(unit.Dp(1000), unit.Dp(700)))

	if c := o.config.Get(); c.Watch.Enabled {
		w, err := NewDirectoryWatcher(c.Watch.DebounceMs)
		if err != nil {
			log.Printf("Failed to start directory watcher: %v", err)
		} else {
			o.watcher = w
			defer w.Close()
		}
	}

	go o.scanner.Start()
	go o.processEvents()

	// Drags arrive on native callbacks; views only run on the frame loop
	platform.SetDragHandler(func(e platform.DragEvent) {
		o.post(func() { o.handleDrag(e) })
	})
	defer platform.SetDragHandler(nil)

	if len(dirs) > 0 {
		// Command line directories take the same path as a drop
		platform.Deliver(platform.DragEvent{Kind: platform.Drop, Paths: dirs})
	} else if len(o.config.LookupDirectories()) > 0 {
		o.StartScan()
	} else {
		o.drop.Show()
		o.updateStatus()
	}

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			o.drainQueue()
			gtx := app.NewContext(&ops, e)
			evt := o.gallery.Layout(gtx)

			if o.debug && evt.Action != ui.ActionNone {
				log.Printf("[DEBUG] Action: %d", evt.Action)
			}

			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		default:
			o.handlePlatformEvent(e)
		}
	}
}

// post queues fn for the frame loop and wakes the window
func (o *Orchestrator) post(fn func()) {
	o.uiQueue <- fn
	o.invalidate()
}

func (o *Orchestrator) drainQueue() {
	for {
		select {
		case fn := <-o.uiQueue:
			fn()
		default:
			return
		}
	}
}

// notify shows a toast; safe from any goroutine
func (o *Orchestrator) notify(message string, kind ui.ToastKind) {
	o.gallery.Toast.Show(message, kind, time.Now())
	o.invalidate()
}

func (o *Orchestrator) invalidate() {
	if o.window != nil {
		o.window.Invalidate()
	}
}

// processEvents forwards scanner and watcher output to the frame loop
func (o *Orchestrator) processEvents() {
	var notify <-chan string
	if o.watcher != nil {
		notify = o.watcher.Notify()
	}
	for {
		select {
		case resp := <-o.scanner.ResponseChan:
			o.post(func() { o.handleScanResponse(resp) })
		case p := <-o.scanner.ProgressChan:
			o.post(func() { o.handleProgress(p) })
		case dir := <-notify:
			debug.Log(debug.APP, "Rescanning after change in %s", dir)
			o.post(o.StartScan)
		}
	}
}

func (o *Orchestrator) handleDrag(e platform.DragEvent) {
	p := ui.Payload(e.Paths)
	switch e.Kind {
	case platform.DragEnter:
		o.drop.DragEntered(p)
	case platform.DragExit:
		o.drop.DragExited()
	case platform.Drop:
		if len(ui.DirectoryPaths(p)) == 0 {
			o.notify("Only folders can be dropped", ui.ToastInfo)
		}
		o.drop.DragEntered(p)
		o.drop.PerformDrop(p)
		if o.items.Len() > 0 && !o.scanning {
			// Nothing new was accepted and pictures are still shown
			o.drop.Hide()
		}
	}
}

// StartScan scans the configured lookup directories, cancelling any scan
// still running. Must run on the frame loop.
func (o *Orchestrator) StartScan() {
	dirs := o.config.LookupDirectories()
	if len(dirs) == 0 {
		o.drop.Show()
		return
	}

	o.gen++
	o.scanning = true
	o.found = 0
	o.updateStatus()
	debug.Log(debug.APP, "StartScan: gen=%d dirs=%v", o.gen, dirs)
	o.scanner.RequestChan <- scan.Request{Op: scan.ScanDirs, Dirs: dirs, Gen: o.gen}
}

func (o *Orchestrator) handleScanResponse(resp scan.Response) {
	if resp.Gen != o.gen {
		debug.Log(debug.APP, "Dropping stale scan response gen=%d (current %d)", resp.Gen, o.gen)
		return
	}
	if resp.Cancelled {
		return
	}
	o.scanning = false
	if resp.Err != nil {
		log.Printf("Scan Error: %v", resp.Err)
		o.notify("Some pictures could not be scanned", ui.ToastError)
	}

	o.items.Replace(resp.Records)
	recs := make([]ui.Record, len(resp.Records))
	for i, r := range resp.Records {
		recs[i] = r
	}
	o.gallery.SetRecords(recs)
	o.clicks.reset()

	if o.items.Len() > 0 {
		o.drop.Hide()
	} else {
		o.drop.Show()
	}
	o.rewatch(resp.Dirs)
	o.updateStatus()
}

func (o *Orchestrator) handleProgress(p scan.Progress) {
	if p.Gen != o.gen || !o.scanning {
		return
	}
	o.found = p.Found
	o.updateStatus()
}

func (o *Orchestrator) rewatch(dirs []string) {
	if o.watcher == nil {
		return
	}
	o.watcher.UnwatchAll()
	for _, dir := range dirs {
		if err := o.watcher.WatchTree(dir); err != nil {
			log.Printf("Failed to watch %s: %v", dir, err)
		}
	}
}

func (o *Orchestrator) updateStatus() {
	if o.scanning {
		o.gallery.Status = ui.StatusText(int(o.found), 0, true)
	} else {
		o.gallery.Status = ui.StatusText(o.items.Len(), o.items.TotalSize(), false)
	}
	o.invalidate()
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionRescan:
		o.StartScan()
	case ui.ActionOpen:
		o.openSelected()
	case ui.ActionReveal:
		o.revealSelected()
	case ui.ActionNext:
		o.gallery.Move(1)
	case ui.ActionPrevious:
		o.gallery.Move(-1)
	case ui.ActionClearSelection:
		o.gallery.Select(-1)
	case ui.ActionToggleDateLabel:
		o.config.SetCreationDateAsLabel(!o.config.Snapshot().CreationDateAsLabel)
		o.gallery.SetSettings(o.config.Snapshot())
	case ui.ActionToggleHighlight:
		o.config.SetHighlightPicturesWithoutExif(!o.config.Snapshot().HighlightPicturesWithoutExif)
		o.gallery.SetSettings(o.config.Snapshot())
	default:
		return
	}
	o.invalidate()
}

func (o *Orchestrator) selectedPath() (string, bool) {
	rec := o.items.At(o.gallery.Selected())
	if rec == nil {
		return "", false
	}
	return rec.Path(), true
}

func (o *Orchestrator) openSelected() {
	if path, ok := o.selectedPath(); ok {
		if err := platformOpen(path); err != nil {
			log.Printf("Error opening file: %v", err)
			o.notify("Cannot open "+filepath.Base(path), ui.ToastError)
		}
	}
}

func (o *Orchestrator) revealSelected() {
	if path, ok := o.selectedPath(); ok {
		if err := platformReveal(path); err != nil {
			log.Printf("Error revealing file: %v", err)
			o.notify("Cannot show "+filepath.Base(path)+" in the file manager", ui.ToastError)
		}
	}
}

func Main(debug bool, dirs []string) {
	go func() {
		o := NewOrchestrator(debug)
		if err := o.Run(dirs); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
