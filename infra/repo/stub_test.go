package repo

import (
	"context"
	"errors"

	"pulsefeed/infra/resource"
)

// stubClient wraps another client and lets tests inject failures and
// count calls per method.
type stubClient struct {
	inner resource.Client

	fetchManyCalls int
	fetchOneCalls  int
	createCalls    int
	updateCalls    int
	deleteCalls    int

	// failUpdate lists record ids whose Update should fail.
	failUpdate map[string]bool
}

var errStub = errors.New("backend rejected the call")

func newStub(inner resource.Client) *stubClient {
	return &stubClient{inner: inner, failUpdate: map[string]bool{}}
}

func (s *stubClient) calls() int {
	return s.fetchManyCalls + s.fetchOneCalls + s.createCalls + s.updateCalls + s.deleteCalls
}

func (s *stubClient) FetchMany(ctx context.Context, collection string, q resource.Query) ([]resource.Record, error) {
	s.fetchManyCalls++
	return s.inner.FetchMany(ctx, collection, q)
}

func (s *stubClient) FetchOne(ctx context.Context, collection, id string) (resource.Record, error) {
	s.fetchOneCalls++
	return s.inner.FetchOne(ctx, collection, id)
}

func (s *stubClient) Create(ctx context.Context, collection string, rec resource.Record) (resource.Record, error) {
	s.createCalls++
	return s.inner.Create(ctx, collection, rec)
}

func (s *stubClient) Update(ctx context.Context, collection, id string, patch resource.Record) (resource.Record, error) {
	s.updateCalls++
	if s.failUpdate[id] {
		return nil, errStub
	}
	return s.inner.Update(ctx, collection, id, patch)
}

func (s *stubClient) Delete(ctx context.Context, collection, id string) (bool, error) {
	s.deleteCalls++
	return s.inner.Delete(ctx, collection, id)
}
