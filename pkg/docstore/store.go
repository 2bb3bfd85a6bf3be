// Package docstore persists named collections as whole JSON documents.
//
// A collection is read and written in one piece: Get returns the entire
// document and Put replaces it. There are no partial writes, no caching and
// no cross-process locking. Mutations inside one process are serialized per
// collection by Collection.Mutate.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

const (
	Places   = "places"
	Users    = "users"
	Owners   = "owners"
	Reviews  = "reviews"
	Bookings = "bookings"
)

// All lists every collection the service owns.
var All = []string{Places, Users, Owners, Reviews, Bookings}

var (
	// ErrUnavailable marks any failure of the backing medium.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrMissing is returned by Get when the collection was never written.
	ErrMissing = fmt.Errorf("%w: collection does not exist", ErrUnavailable)

	ErrDuplicateID = errors.New("duplicate record id in collection")
)

// Store is a blob store keyed by collection name.
type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Ping(ctx context.Context) error
}

func unavailable(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, name, err)
}

// Bootstrap writes an empty array for every missing collection.
func Bootstrap(ctx context.Context, store Store, names ...string) ([]string, error) {
	var created []string
	for _, name := range names {
		_, err := store.Get(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrMissing) {
			return created, err
		}
		if err := store.Put(ctx, name, []byte("[]")); err != nil {
			return created, err
		}
		created = append(created, name)
	}
	return created, nil
}

// Copy replicates collections from one store into another verbatim.
func Copy(ctx context.Context, from, to Store, names ...string) error {
	for _, name := range names {
		data, err := from.Get(ctx, name)
		if err != nil {
			return err
		}
		if err := to.Put(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}
