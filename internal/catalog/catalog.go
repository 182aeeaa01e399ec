// Package catalog holds the in-memory activity store. The catalog is
// populated once at startup and never gains or loses activities afterwards;
// only each activity's roster mutates over the process lifetime.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mergington/activity-signups/internal/model"
)

// ErrNotFound is returned when a requested activity or participant does not
// exist.
var ErrNotFound = errors.New("not found")

// Catalog maps activity names to activity records behind a single lock.
// One coarse lock is enough here: every operation is a short CPU-bound
// membership or length check, never I/O.
type Catalog struct {
	mu         sync.RWMutex
	activities map[string]*model.Activity
}

// New constructs a Catalog from a seed set. Activities without a surrogate
// ID get one assigned; nil rosters become empty slices so the JSON output
// is always a list.
func New(seed []model.Activity) *Catalog {
	c := &Catalog{activities: make(map[string]*model.Activity, len(seed))}
	for _, a := range seed {
		a := a
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		c.activities[a.Name] = &a
	}
	return c
}

// Lookup returns a deep copy of the named activity. Matching is an exact
// string comparison on the name; no normalization is applied.
func (c *Catalog) Lookup(name string) (model.Activity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.activities[name]
	if !ok {
		return model.Activity{}, fmt.Errorf("activity %q: %w", name, ErrNotFound)
	}
	return a.Clone(), nil
}

// Snapshot returns a read-consistent deep copy of every activity keyed by
// name. Callers may mutate the result freely.
func (c *Catalog) Snapshot() map[string]model.Activity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]model.Activity, len(c.activities))
	for name, a := range c.activities {
		out[name] = a.Clone()
	}
	return out
}

// Names returns all activity names in sorted order, for deterministic logs
// and tests.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.activities))
	for name := range c.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of activities.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.activities)
}

// Update runs mutate against the named activity while holding the write
// lock, so a caller's check-then-act sequence is indivisible with respect
// to all other readers and writers. An error from mutate aborts the
// operation; the activity is never left partially modified.
func (c *Catalog) Update(name string, mutate func(*model.Activity) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.activities[name]
	if !ok {
		return fmt.Errorf("activity %q: %w", name, ErrNotFound)
	}
	return mutate(a)
}
