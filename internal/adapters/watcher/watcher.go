// Package watcher keeps caches coherent with hand edits to the data
// directory by invalidating a hotel whenever its unit file changes.
package watcher

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"hotel_store/internal/storage/filestore"
)

type Invalidator interface {
	Invalidate(ctx context.Context, id string)
}

type Watcher struct {
	fw  *fsnotify.Watcher
	inv Invalidator
}

func New(dir string, inv Invalidator) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{fw: fw, inv: inv}, nil
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&relevant == 0 {
				continue
			}
			id, ok := filestore.IDFromPath(ev.Name)
			if !ok {
				continue
			}
			log.Debug().Str("id", id).Str("op", ev.Op.String()).Msg("hotel unit changed on disk")
			w.inv.Invalidate(ctx, id)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("data dir watcher error")
		}
	}
}

func (w *Watcher) Close() error { return w.fw.Close() }
