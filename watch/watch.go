// Package watch reports tileset images appearing in an inbox directory.
package watch

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/milk9111/tilemapper/mapdata"
)

const debounce = 100 * time.Millisecond

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !IsTilesetImage(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsTilesetImage reports whether path names a PNG.
func IsTilesetImage(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".png"
}

// ReadTileset loads a PNG from disk as a new tileset named after the file.
func ReadTileset(path string) (mapdata.Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mapdata.Tileset{}, fmt.Errorf("watch: read %s: %w", path, err)
	}
	return NewTileset(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data)
}

// NewTileset wraps PNG bytes into a tileset with a fresh id.
func NewTileset(name string, data []byte) (mapdata.Tileset, error) {
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return mapdata.Tileset{}, fmt.Errorf("watch: %s is not a PNG: %w", name, err)
	}
	return mapdata.Tileset{
		ID:   uuid.NewString(),
		Name: name,
		Blob: mapdata.EncodeDataURL(data),
	}, nil
}
