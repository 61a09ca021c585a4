package archive

import (
	"log"
	"sync"
	"time"
)

// Index tracks which curve dates have been published, with concurrency
// safety. It lets the daily task skip a date the source hasn't rolled yet
// and backs the /status command.
type Index struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// Summary is a point-in-time view of the run index.
type Summary struct {
	PublishedDates int
	TotalRuns      int
	TotalFailures  int
	LastRunAt      time.Time
	LastDate       string
}

// NewIndex creates an Index, loading or initializing state from disk.
func NewIndex(filePath string) (*Index, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	ix := &Index{state: state, filePath: filePath}
	if err := ix.save(); err != nil {
		return nil, err
	}
	return ix, nil
}

// IsPublished reports whether the curve date has already been published.
func (ix *Index) IsPublished(date string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, ok := ix.state.Published[date]
	return ok
}

// MarkPublished records a published curve date.
func (ix *Index) MarkPublished(date string, tenorCount, failures int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.state.Published[date] = Entry{
		PublishedAt: time.Now(),
		TenorCount:  tenorCount,
		Failures:    failures,
	}
	ix.state.TotalRuns++
	ix.state.TotalFailures += failures
	ix.state.LastRunAt = time.Now()

	if err := ix.save(); err != nil {
		log.Printf("[ERROR] failed to save archive index: %v", err)
	}
}

// TouchRun records a run that produced no new publication.
func (ix *Index) TouchRun() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.state.TotalRuns++
	ix.state.LastRunAt = time.Now()

	if err := ix.save(); err != nil {
		log.Printf("[ERROR] failed to save archive index: %v", err)
	}
}

// Summary returns current index statistics.
func (ix *Index) Summary() Summary {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var lastDate string
	for date := range ix.state.Published {
		if date > lastDate {
			lastDate = date
		}
	}
	return Summary{
		PublishedDates: len(ix.state.Published),
		TotalRuns:      ix.state.TotalRuns,
		TotalFailures:  ix.state.TotalFailures,
		LastRunAt:      ix.state.LastRunAt,
		LastDate:       lastDate,
	}
}

func (ix *Index) save() error {
	return SaveState(ix.filePath, ix.state)
}
