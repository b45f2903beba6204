package resource

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLatency approximates a round trip to the hosted backend so that
// callers of the mock dataset keep their asynchronous behavior.
const DefaultLatency = 275 * time.Millisecond

// memoryClient implements Client over fixture data. It is substitutable for
// the HTTP client without changing any repository contract.
type memoryClient struct {
	mu      sync.Mutex
	latency time.Duration
	data    map[string]map[string]Record // collection -> id -> record
}

// NewMemory creates an empty in-memory Client. Each call sleeps for latency
// (interruptible by context) before answering.
func NewMemory(latency time.Duration) *memoryClient {
	return &memoryClient{
		latency: latency,
		data:    make(map[string]map[string]Record),
	}
}

// Seed loads fixture records into a collection. Records without an "Id"
// field get a generated one.
func (m *memoryClient) Seed(collection string, records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll := m.collection(collection)
	for _, rec := range records {
		rec = rec.Clone()
		if rec.String("Id") == "" {
			rec["Id"] = uuid.NewString()
		}
		coll[rec.String("Id")] = rec
	}
}

func (m *memoryClient) collection(name string) map[string]Record {
	coll, ok := m.data[name]
	if !ok {
		coll = make(map[string]Record)
		m.data[name] = coll
	}
	return coll
}

func (m *memoryClient) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memoryClient) FetchMany(ctx context.Context, collection string, q Query) ([]Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Record
	for _, rec := range m.collection(collection) {
		if q.Where == nil || evalGroup(*q.Where, rec) {
			matched = append(matched, rec.Clone())
		}
	}
	sortRecords(matched, q.Sort)
	return window(matched, q.Offset, q.Limit), nil
}

func (m *memoryClient) FetchOne(ctx context.Context, collection, id string) (Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.collection(collection)[id]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (m *memoryClient) Create(ctx context.Context, collection string, rec Record) (Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := rec.Clone()
	if stored.String("Id") == "" {
		stored["Id"] = uuid.NewString()
	}
	m.collection(collection)[stored.String("Id")] = stored
	return stored.Clone(), nil
}

func (m *memoryClient) Update(ctx context.Context, collection, id string, patch Record) (Record, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.collection(collection)[id]
	if !ok {
		return nil, nil
	}
	for k, v := range patch {
		if k == "Id" {
			continue
		}
		rec[k] = v
	}
	return rec.Clone(), nil
}

func (m *memoryClient) Delete(ctx context.Context, collection, id string) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collection(collection)
	if _, ok := coll[id]; !ok {
		return false, nil
	}
	delete(coll, id)
	return true, nil
}

func evalGroup(g Group, rec Record) bool {
	results := make([]bool, 0, len(g.Conds)+len(g.Groups))
	for _, c := range g.Conds {
		results = append(results, evalCond(c, rec))
	}
	for _, sub := range g.Groups {
		results = append(results, evalGroup(sub, rec))
	}
	if len(results) == 0 {
		return true
	}
	if g.Op == GroupOr {
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func evalCond(c Cond, rec Record) bool {
	switch c.Op {
	case OpEqualTo:
		return fmt.Sprint(rec[c.Field]) == fmt.Sprint(c.Value)
	case OpContains:
		needle, _ := c.Value.(string)
		return strings.Contains(
			strings.ToLower(rec.String(c.Field)),
			strings.ToLower(needle),
		)
	default:
		return false
	}
}

func sortRecords(records []Record, keys []Sort) {
	if len(keys) == 0 {
		// Deterministic order even without an explicit sort.
		keys = []Sort{{Field: "Id"}}
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, k := range keys {
			a, b := fmt.Sprint(records[i][k.Field]), fmt.Sprint(records[j][k.Field])
			if a == b {
				continue
			}
			if k.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func window(records []Record, offset, limit int) []Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
