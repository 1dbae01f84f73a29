package model

import "sync"

// Collection is the ordered set of records currently loaded
type Collection struct {
	mu      sync.RWMutex
	records []*ImageRecord
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{}
}

// Len returns the number of loaded records
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// At returns the record at index i, or nil when out of range
func (c *Collection) At(i int) *ImageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.records) {
		return nil
	}
	return c.records[i]
}

// Replace swaps the loaded records for recs
func (c *Collection) Replace(recs []*ImageRecord) {
	c.mu.Lock()
	c.records = append([]*ImageRecord(nil), recs...)
	c.mu.Unlock()
}

// Records returns a copy of the loaded records
func (c *Collection) Records() []*ImageRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*ImageRecord(nil), c.records...)
}

// TotalSize returns the summed file size of all records
func (c *Collection) TotalSize() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total int64
	for _, r := range c.records {
		total += r.size
	}
	return total
}
