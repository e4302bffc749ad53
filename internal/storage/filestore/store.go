// Package filestore keeps one pretty-printed JSON file per hotel in a
// single directory. The directory is the source of truth; files may be
// read or edited by hand.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_store/internal/adapters/observability"
	"hotel_store/internal/domain"
)

const ext = ".json"

type Store struct {
	dir     string
	workers int
	locks   *keyLocks
}

// New opens (creating if needed) a store rooted at dir. workers bounds the
// number of files decoded in parallel by List.
func New(dir string, workers int) (*Store, error) {
	if workers <= 0 {
		workers = 8
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir, workers: workers, locks: newKeyLocks()}, nil
}

func (s *Store) Dir() string { return s.dir }

// IDFromPath maps a unit file name back to its hotel ID.
func IDFromPath(p string) (string, bool) {
	base := filepath.Base(p)
	if !strings.HasSuffix(base, ext) {
		return "", false
	}
	id := strings.TrimSuffix(base, ext)
	return id, validKey(id)
}

// validKey reports whether id can name a unit inside the store directory.
func validKey(id string) bool {
	if id == "" || strings.HasPrefix(id, ".") {
		return false
	}
	return !strings.ContainsAny(id, "/\\\x00")
}

func (s *Store) path(id string) string { return filepath.Join(s.dir, id+ext) }

// Get returns domain.ErrNotFound when no unit exists for id and a
// *domain.CorruptError when it exists but does not decode.
func (s *Store) Get(ctx context.Context, id string) (h domain.Hotel, err error) {
	defer observeSince("get", time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return domain.Hotel{}, err
	}
	h, err = s.read(id)
	if errors.Is(err, domain.ErrCorrupt) {
		log.Error().Str("id", id).Err(err).Msg("corrupt hotel record")
	}
	return h, err
}

// Put writes the whole record, replacing any previous unit. Readers see
// either the old or the new file, never a partial one.
func (s *Store) Put(ctx context.Context, h domain.Hotel) (err error) {
	defer observeSince("put", time.Now(), &err)

	if !validKey(h.ID) {
		return domain.Invalid("id", "cannot be used as a record key")
	}
	unlock, err := s.locks.Lock(ctx, h.ID)
	if err != nil {
		return err
	}
	defer unlock()
	return s.write(h)
}

// Update is a serialised read-modify-write on one key. fn sees the current
// record; the ID is restored after fn runs, so fn cannot move the record.
func (s *Store) Update(ctx context.Context, id string, fn func(*domain.Hotel) error) (h domain.Hotel, err error) {
	defer observeSince("update", time.Now(), &err)

	if !validKey(id) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer unlock()

	h, err = s.read(id)
	if err != nil {
		if errors.Is(err, domain.ErrCorrupt) {
			log.Error().Str("id", id).Err(err).Msg("corrupt hotel record")
		}
		return domain.Hotel{}, err
	}
	if err := fn(&h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = id
	if err := s.write(h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

// List decodes every unit in the directory. Corrupt units are logged and
// skipped; units removed mid-scan are skipped; other I/O errors abort.
func (s *Store) List(ctx context.Context) (out []domain.Hotel, err error) {
	defer observeSince("list", time.Now(), &err)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := IDFromPath(e.Name()); ok {
			ids = append(ids, id)
		}
	}

	results := make([]*domain.Hotel, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := s.read(id)
			switch {
			case err == nil:
				results[i] = &h
			case errors.Is(err, domain.ErrNotFound):
				log.Debug().Str("id", id).Msg("hotel record vanished during list")
			case errors.Is(err, domain.ErrCorrupt):
				log.Warn().Str("id", id).Err(err).Msg("skipping corrupt hotel record")
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out = make([]domain.Hotel, 0, len(ids))
	for _, h := range results {
		if h != nil {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) read(id string) (domain.Hotel, error) {
	if !validKey(id) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, fmt.Errorf("read hotel %s: %w", id, err)
	}
	return decode(id, b)
}

func decode(id string, b []byte) (domain.Hotel, error) {
	var h domain.Hotel
	if err := json.Unmarshal(b, &h); err != nil {
		observability.ObserveCorrupt()
		return domain.Hotel{}, &domain.CorruptError{ID: id, Err: err}
	}
	if h.ID != id {
		observability.ObserveCorrupt()
		return domain.Hotel{}, &domain.CorruptError{ID: id, Err: fmt.Errorf("record id %q does not match key", h.ID)}
	}
	return h, nil
}

func (s *Store) write(h domain.Hotel) error {
	b, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("encode hotel %s: %w", h.ID, err)
	}
	b = append(b, '\n')
	if err := renameio.WriteFile(s.path(h.ID), b, 0o644); err != nil {
		return fmt.Errorf("write hotel %s: %w", h.ID, err)
	}
	return nil
}

func observeSince(op string, start time.Time, err *error) {
	observability.ObserveStore(op, *err, time.Since(start))
}
