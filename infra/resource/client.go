// Package resource defines the normalized query/record contract against the
// backend of record, with two interchangeable implementations: an HTTP client
// for the hosted backend and an in-memory client over fixture data.
package resource

import "context"

// Collection names on the backend of record.
const (
	CollectionPosts         = "post"
	CollectionComments      = "comment"
	CollectionUsers         = "app_User"
	CollectionNotifications = "app_Notification"
	CollectionMessages      = "message"
)

// Client sends normalized queries to the backend of record. Implementations
// never panic across this boundary: every failure is a returned error, and
// expected absence is (nil, nil). Logging is the caller's job.
type Client interface {
	// FetchMany returns the records of a collection matching the query.
	FetchMany(ctx context.Context, collection string, q Query) ([]Record, error)

	// FetchOne returns a single record by ID, or (nil, nil) when absent.
	FetchOne(ctx context.Context, collection, id string) (Record, error)

	// Create inserts a record and returns it with backend-assigned fields.
	Create(ctx context.Context, collection string, rec Record) (Record, error)

	// Update applies a partial patch and returns the updated record, or
	// (nil, nil) when the record does not exist.
	Update(ctx context.Context, collection, id string, patch Record) (Record, error)

	// Delete removes a record. Deleting an absent record returns false, nil.
	Delete(ctx context.Context, collection, id string) (bool, error)
}
