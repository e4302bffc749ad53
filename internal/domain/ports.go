package domain

import "context"

// HotelStore persists one unit per hotel ID.
type HotelStore interface {
	Get(ctx context.Context, id string) (Hotel, error)
	Put(ctx context.Context, h Hotel) error
	List(ctx context.Context) ([]Hotel, error)
	// Update runs fn on the current record while holding the key's lock
	// and persists the result. fn may return an error to abort the write.
	Update(ctx context.Context, id string, fn func(*Hotel) error) (Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Slugger derives URL-safe identifiers from titles.
type Slugger interface {
	Make(title string) string
	Unique(title string, taken map[string]struct{}) string
}
