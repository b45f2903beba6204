package app

import (
	"sync"

	"pulsefeed/domain"
)

// Status tracks an optimistic mutation through its lifecycle:
// Idle -> Pending -> Confirmed | RolledBack.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusConfirmed
	StatusRolledBack
)

// inflight guards against overlapping mutations on the same
// (entity, field) target. A second mutation before the first settles is
// rejected with domain.ErrBusy rather than queued.
type inflight struct {
	mu      sync.Mutex
	targets map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{targets: make(map[string]struct{})}
}

// acquire claims a target for one mutation.
func (g *inflight) acquire(entityID, field string) error {
	key := entityID + "/" + field
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.targets[key]; busy {
		return domain.ErrBusy
	}
	g.targets[key] = struct{}{}
	return nil
}

// release settles a target, whether confirmed or rolled back.
func (g *inflight) release(entityID, field string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.targets, entityID+"/"+field)
}
