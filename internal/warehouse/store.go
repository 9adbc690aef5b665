package warehouse

import (
	"context"
	"sync/atomic"
)

// Store holds the current warehouse dataset. Reload swaps the whole dataset
// reference atomically between requests; readers always observe a complete
// snapshot and the underlying slices are never mutated in place.
type Store struct {
	loader  *Loader
	dir     string
	current atomic.Pointer[Dataset]
}

func NewStore(loader *Loader, dir string) *Store {
	return &Store{loader: loader, dir: dir}
}

// Reload loads the warehouse directory and swaps it in. On error the
// previous dataset stays current.
func (s *Store) Reload(ctx context.Context) error {
	ds, err := s.loader.Load(ctx, s.dir)
	if err != nil {
		return err
	}
	s.current.Store(ds)
	return nil
}

// Dataset returns the current snapshot, or nil before the first successful
// Reload.
func (s *Store) Dataset() *Dataset {
	return s.current.Load()
}
