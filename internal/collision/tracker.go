// Package collision guards the uniqueness of series in a dataset.
package collision

import (
	"fmt"

	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/internal/hash"
)

// Tracker records the series names added to a dataset and rejects names that
// would make the index ambiguous.
type Tracker struct {
	names map[uint64]string
	order []string
	idOf  func(string) uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
		order: make([]string, 0),
		idOf:  hash.SeriesID,
	}
}

// Track registers name and returns its series ID.
//
// Returns:
//   - errs.ErrInvalidSeriesName if name is empty
//   - errs.ErrDuplicateSeries if name was tracked before
//   - errs.ErrHashCollision if a different name has the same ID
func (t *Tracker) Track(name string) (uint64, error) {
	if name == "" {
		return 0, errs.ErrInvalidSeriesName
	}

	id := t.idOf(name)
	if existing, exists := t.names[id]; exists {
		if existing == name {
			return 0, fmt.Errorf("%w: %q", errs.ErrDuplicateSeries, name)
		}

		return 0, fmt.Errorf("%w: %q and %q", errs.ErrHashCollision, existing, name)
	}

	t.names[id] = name
	t.order = append(t.order, name)

	return id, nil
}

// Names returns the tracked names in the order they were added.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears the tracker, keeping its allocations.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
}
