package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Source serves the current catalog and swaps it when the content directory
// changes on disk.
type Source struct {
	dir string

	mu      sync.RWMutex
	current *Catalog
}

// NewSource loads the embedded catalog, overlaid with dir when dir is set.
func NewSource(dir string) (*Source, error) {
	s := &Source{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticSource wraps an already loaded catalog. It never reloads.
func NewStaticSource(c *Catalog) *Source {
	return &Source{current: c}
}

// Current returns the catalog snapshot. Callers must not mutate it.
func (s *Source) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload rebuilds the catalog. The previous snapshot stays in place when the
// new content fails to load or validate.
func (s *Source) Reload() error {
	var override fs.FS
	if s.dir != "" {
		override = os.DirFS(s.dir)
	}

	c, err := LoadOverlay(override)
	if err != nil {
		return err
	}
	if errs := c.Validate(); len(errs) > 0 {
		return fmt.Errorf("catalog validation: %d problems, first: %w", len(errs), errs[0])
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return nil
}

// Watch reloads the catalog whenever a file under the content directory
// changes. It blocks until ctx is cancelled.
func (s *Source) Watch(ctx context.Context) error {
	if s.dir == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.dir); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					log.Printf("[catalog] reload error: %v", err)
					return
				}
				log.Printf("[catalog] reloaded from %s", s.dir)
			})

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Printf("[catalog] fsnotify error: %v", wErr)
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
