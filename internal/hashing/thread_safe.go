package hashing

import "sync"

// ThreadSafeDuplicateDetector wraps DuplicateDetector with mutex protection
// so pool workers can report finished games concurrently.
type ThreadSafeDuplicateDetector struct {
	detector *DuplicateDetector
	mu       sync.RWMutex
}

// NewThreadSafeDuplicateDetector creates a new thread-safe detector.
func NewThreadSafeDuplicateDetector(matchPlies bool) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(matchPlies),
	}
}

// CheckAndAdd atomically checks sig against earlier games and records it.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(sig GameSignature) (GameSignature, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(sig)
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of distinct final positions.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}
