// Package lifecycle tracks which windows of a workspace have been initialized.
// A window is initialized once, the first time it appears in a synced tree;
// later content updates for the same id never re-trigger initialization.
package lifecycle

import (
	"sync"

	"chartgrid/internal/layout"
)

// Hook is invoked once per newly seen window.
type Hook func(id layout.NodeID, content any)

// Tracker owns the set of initialized window ids for one workspace.
// Safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	seen map[layout.NodeID]struct{}
	hook Hook
}

// New creates a Tracker. A nil hook only records ids.
func New(hook Hook) *Tracker {
	return &Tracker{
		seen: make(map[layout.NodeID]struct{}),
		hook: hook,
	}
}

// Sync marks every window in tree that has not been seen before and invokes
// the hook for it. Returns the newly initialized ids in traversal order.
func (t *Tracker) Sync(tree layout.Node) []layout.NodeID {
	return t.Fire(t.Claim(tree))
}

// Claim marks the windows of tree that have not been seen before and returns
// them without invoking the hook. Callers that must claim under their own
// lock pass the result to Fire once that lock is released.
func (t *Tracker) Claim(tree layout.Node) []*layout.Window {
	var fresh []*layout.Window

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, w := range layout.Windows(tree) {
		if _, ok := t.seen[w.ID]; ok {
			continue
		}
		t.seen[w.ID] = struct{}{}
		fresh = append(fresh, w)
	}
	return fresh
}

// Fire invokes the hook for windows returned by Claim and returns their ids.
func (t *Tracker) Fire(fresh []*layout.Window) []layout.NodeID {
	ids := make([]layout.NodeID, 0, len(fresh))
	for _, w := range fresh {
		ids = append(ids, w.ID)
		if t.hook != nil {
			t.hook(w.ID, w.Content)
		}
	}
	return ids
}

// Initialized reports whether id has been initialized.
func (t *Tracker) Initialized(id layout.NodeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[id]
	return ok
}

// Count returns the number of initialized ids.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Prune forgets ids that are no longer windows of tree.
// Returns the number of ids removed.
func (t *Tracker) Prune(tree layout.Node) int {
	live := make(map[layout.NodeID]bool)
	for _, w := range layout.Windows(tree) {
		live[w.ID] = true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	pruned := 0
	for id := range t.seen {
		if !live[id] {
			delete(t.seen, id)
			pruned++
		}
	}
	return pruned
}
