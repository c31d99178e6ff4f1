package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
)

// Watcher reports prefab and script files changed on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
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

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

// Change is a prefab whose content differs from the last version seen.
type Change struct {
	Name string
	Data []byte
}

// Reloader turns watcher events into content changes. Editors often write a
// file several times per save; Reloader hashes each version and drops events
// whose content is unchanged.
type Reloader struct {
	watcher *Watcher
	hashes  map[string]uint64
}

// NewReloader watches the prefab directory on disk. It returns an error when
// the directory does not exist, e.g. when running from an installed binary.
func NewReloader() (*Reloader, error) {
	w, err := NewWatcher(DiskDir(), filepath.Join(DiskDir(), "scripts"))
	if err != nil {
		return nil, err
	}
	return &Reloader{watcher: w, hashes: make(map[string]uint64)}, nil
}

// Seen records data as the current version of name and reports whether it
// differs from the previous one.
func (r *Reloader) Seen(name string, data []byte) bool {
	if r == nil {
		return false
	}
	if r.hashes == nil {
		r.hashes = make(map[string]uint64)
	}
	h := xxh3.Hash(data)
	if prev, ok := r.hashes[name]; ok && prev == h {
		return false
	}
	r.hashes[name] = h
	return true
}

// Poll drains pending watcher events without blocking and returns the
// prefabs whose content actually changed.
func (r *Reloader) Poll() []Change {
	if r == nil || r.watcher == nil {
		return nil
	}
	var out []Change
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				return out
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			name := filepath.Base(path)
			if isScriptFile(path) {
				name = "scripts/" + name
			}
			if r.Seen(name, data) {
				out = append(out, Change{Name: name, Data: data})
			}
		default:
			return out
		}
	}
}

// Errors exposes watcher errors.
func (r *Reloader) Errors() <-chan error {
	if r == nil || r.watcher == nil {
		return nil
	}
	return r.watcher.Errors
}

func (r *Reloader) Close() error {
	if r == nil {
		return nil
	}
	return r.watcher.Close()
}
