package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docdex/internal/logger"
)

// DefaultDebounce batches filesystem events before notifying.
// Editors commonly emit several events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watch notifies on the returned channel whenever a matching file in
// the collection changes. Events are debounced. The channel closes when
// ctx is cancelled or the watcher fails.
func (s *Source) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	dir, err := s.collectionDir(collection)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("filesystem: create watcher: %w", err)
	}

	// Watch the collection tree. fsnotify is not recursive, so every
	// subdirectory gets its own watch.
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return filepath.SkipAll
			}
			return err
		}
		if entry.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("filesystem: watch %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New subdirectories need their own watch.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if !s.matchesExtension(event.Name) {
					continue
				}
				logger.Debug("Change detected: %s (%s)", event.Name, event.Op)
				if timer == nil {
					timer = time.NewTimer(DefaultDebounce)
					timerC = timer.C
				} else {
					timer.Reset(DefaultDebounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}
