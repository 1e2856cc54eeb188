package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/touchgate/internal/core/logging"
)

// debounceDelay coalesces the burst of events editors emit for one save.
const debounceDelay = 50 * time.Millisecond

// Watch returns a stream that shows the contents of path and reloads it
// whenever the file is written or replaced. The watcher stops when ctx is
// cancelled.
func Watch(ctx context.Context, path string) (*Stream, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so atomic renames by editors are seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	stream := NewStream(string(body))
	log := logging.Component("content")
	target := filepath.Clean(path)

	go func() {
		defer func() { _ = watcher.Close() }()

		var debounceTimer *time.Timer
		defer func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
		}()

		reload := func() {
			data, err := os.ReadFile(target)
			if err != nil {
				log.Warn().Err(err).Str("path", target).Msg("failed to reload content")
				return
			}
			stream.Update(string(data))
			log.Debug().Str("path", target).Int("bytes", len(data)).Msg("content reloaded")
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, reload)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("content watcher error")
			}
		}
	}()

	return stream, nil
}
