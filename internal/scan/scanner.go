// Package scan walks lookup directories and turns the pictures found into
// image records.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/photominer/internal/debug"
	"github.com/justyntemme/photominer/internal/model"
	"github.com/justyntemme/photominer/internal/store"
)

type OpType int

const (
	ScanDirs OpType = iota
	CancelScan
)

type Request struct {
	Op   OpType
	Dirs []string
	Gen  int64 // Generation counter to track stale requests
}

type Response struct {
	Gen       int64
	Dirs      []string
	Records   []*model.ImageRecord
	Err       error
	Cancelled bool
}

// Progress is sent while a scan runs
type Progress struct {
	Gen   int64
	Found int64
	Label string
}

// MetaCache remembers metadata between scans
type MetaCache interface {
	Lookup(path string, modTime time.Time) (store.Meta, bool)
	Put(m store.Meta) error
	Prune(root string, keep map[string]bool) (int, error)
}

type Scanner struct {
	RequestChan  chan Request
	ResponseChan chan Response
	ProgressChan chan Progress

	cache  MetaCache
	thumbs model.ThumbnailSource

	cancelMu   sync.Mutex
	cancelFunc context.CancelFunc
}

// NewScanner creates a scanner. cache and thumbs may be nil.
func NewScanner(cache MetaCache, thumbs model.ThumbnailSource) *Scanner {
	return &Scanner{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
		ProgressChan: make(chan Progress, 100),
		cache:        cache,
		thumbs:       thumbs,
	}
}

// Start processes requests until RequestChan is closed.
// A new scan cancels the one in flight.
func (s *Scanner) Start() {
	for req := range s.RequestChan {
		debug.Log(debug.SCAN, "Request: op=%d dirs=%v gen=%d", req.Op, req.Dirs, req.Gen)

		s.cancelMu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
			s.cancelFunc = nil
		}
		if req.Op == CancelScan {
			s.cancelMu.Unlock()
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.cancelFunc = cancel
		s.cancelMu.Unlock()

		go func(ctx context.Context, req Request) {
			recs, err := s.scan(ctx, req.Dirs, req.Gen)
			resp := Response{Gen: req.Gen, Dirs: req.Dirs, Records: recs, Err: err}
			if ctx.Err() != nil {
				resp.Cancelled = true
				resp.Err = nil
			}
			debug.Log(debug.SCAN, "Response: records=%d gen=%d cancelled=%v err=%v",
				len(resp.Records), resp.Gen, resp.Cancelled, resp.Err)
			s.ResponseChan <- resp
		}(ctx, req)
	}
}

// Scan walks dirs and returns the pictures found, sorted by creation date
func (s *Scanner) Scan(ctx context.Context, dirs []string) ([]*model.ImageRecord, error) {
	return s.scan(ctx, dirs, 0)
}

func (s *Scanner) scan(ctx context.Context, dirs []string, gen int64) ([]*model.ImageRecord, error) {
	var (
		mu      sync.Mutex
		records []*model.ImageRecord
		seen    = make(map[string]bool)
		found   atomic.Int64
	)

	for _, root := range dirs {
		root = filepath.Clean(root)
		kept := make(map[string]bool)

		conf := fastwalk.Config{Follow: false}
		err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				debug.Log(debug.SCAN, "walk error at %q: %v", path, err)
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return fastwalk.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsImage(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				debug.Log(debug.SCAN, "skipping %q: %v", path, err)
				return nil
			}
			rec := s.record(path, info.ModTime(), info.Size())

			mu.Lock()
			kept[path] = true
			if !seen[path] {
				// Overlapping lookup directories must not list a picture twice
				seen[path] = true
				records = append(records, rec)
			}
			mu.Unlock()

			if n := found.Add(1); n%50 == 0 {
				select {
				case s.ProgressChan <- Progress{Gen: gen, Found: n, Label: fmt.Sprintf("Found %d pictures...", n)}:
				default:
				}
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}

		if s.cache != nil {
			if _, err := s.cache.Prune(root, kept); err != nil {
				debug.Log(debug.SCAN, "prune %s: %v", root, err)
			}
		}
	}

	sortRecords(records)
	return records, nil
}

// record builds a record, preferring cached metadata for unchanged files
func (s *Scanner) record(path string, modTime time.Time, size int64) *model.ImageRecord {
	if s.cache != nil {
		if m, ok := s.cache.Lookup(path, modTime); ok {
			return model.NewImageRecord(path, m.CreationDate, m.HasExif, size, s.thumbs)
		}
	}

	hasExif, created := ReadMetadata(path, modTime)
	if s.cache != nil {
		err := s.cache.Put(store.Meta{Path: path, ModTime: modTime, HasExif: hasExif, CreationDate: created})
		if err != nil {
			debug.Log(debug.SCAN, "%v", err)
		}
	}
	return model.NewImageRecord(path, created, hasExif, size, s.thumbs)
}

func sortRecords(recs []*model.ImageRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].CreationDate(), recs[j].CreationDate()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return recs[i].Path() < recs[j].Path()
	})
}
