// Package files maintains the shell's open editor buffers: unique by
// path, with a single active pointer and dirty tracking across
// regenerations.
package files

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/hardcoreai/shell/logging"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/sirupsen/logrus"
)

// File is one open editor buffer.
type File struct {
	Path    string
	Name    string
	Content string
	Dirty   bool
}

// Registry owns the set of open buffers. Paths are unique; at most one
// file is active and the active path always references an existing
// entry. Operations on unknown paths are no-ops, never errors.
type Registry struct {
	mu     sync.Mutex
	order  []string // insertion order, for the close fallback
	byPath map[string]*File
	active string
	logger *logrus.Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string]*File),
		logger: logging.NewLogger("file-registry"),
	}
}

// BindGenerated subscribes the registry to CodeGenerated events,
// landing generated code in dir under the event's file name. This is
// the only mutation path driven by the event bus. The returned func
// unsubscribes.
func (r *Registry) BindGenerated(bus *events.Bus, dir string) func() {
	return bus.Subscribe(events.CodeGenerated, func(payload interface{}) {
		p, ok := payload.(events.CodeGeneratedPayload)
		if !ok {
			return
		}
		path := filepath.Join(dir, p.FileName)
		r.ReceiveGenerated(path, p.Code, p.FileName)
	})
}

// Open inserts a buffer for path, or just activates it if already open.
// Opening an already-open file never overwrites its content.
func (r *Registry) Open(path, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPath[path]; !ok {
		r.insertLocked(&File{
			Path:    path,
			Name:    filepath.Base(path),
			Content: content,
		})
	}
	r.active = path
}

// ReceiveGenerated lands generated code: existing buffers get their
// content replaced and marked dirty, new paths are inserted dirty.
// The path always becomes active.
func (r *Registry) ReceiveGenerated(path, content, displayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.byPath[path]; ok {
		f.Content = content
		f.Dirty = true
	} else {
		if displayName == "" {
			displayName = filepath.Base(path)
		}
		r.insertLocked(&File{
			Path:    path,
			Name:    displayName,
			Content: content,
			Dirty:   true,
		})
	}
	r.active = path
	r.logger.WithField("path", path).Debug("generated code merged into buffer")
}

// Edit replaces the content of the active buffer. Edits to a
// non-active or unknown path are ignored.
func (r *Registry) Edit(path, newContent string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path != r.active {
		return
	}
	f, ok := r.byPath[path]
	if !ok {
		return
	}
	f.Content = newContent
	f.Dirty = true
}

// Close removes a buffer. Closing the active buffer promotes the most
// recently inserted remaining file, or clears the pointer when none
// remain. Closing an unknown path is a no-op.
func (r *Registry) Close(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPath[path]; !ok {
		return
	}
	delete(r.byPath, path)
	for i, p := range r.order {
		if p == path {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.active == path {
		if len(r.order) > 0 {
			r.active = r.order[len(r.order)-1]
		} else {
			r.active = ""
		}
	}
}

// Active returns a copy of the active buffer, if any.
func (r *Registry) Active() (File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byPath[r.active]
	if !ok {
		return File{}, false
	}
	return *f, true
}

// Get returns a copy of the buffer for path, if open.
func (r *Registry) Get(path string) (File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byPath[path]
	if !ok {
		return File{}, false
	}
	return *f, true
}

// List returns copies of all open buffers in insertion order.
func (r *Registry) List() []File {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]File, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, *r.byPath[p])
	}
	return out
}

// Len returns the number of open buffers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPath)
}

// Save writes the buffer for path to disk and clears its dirty flag.
// Unknown paths are a no-op.
func (r *Registry) Save(path string) error {
	r.mu.Lock()
	f, ok := r.byPath[path]
	if !ok {
		r.mu.Unlock()
		return nil
	}
	content := f.Content
	r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}

	r.mu.Lock()
	if f, ok := r.byPath[path]; ok {
		f.Dirty = false
	}
	r.mu.Unlock()
	return nil
}

// reload refreshes a clean buffer from disk after an external change.
// Dirty buffers keep the user's unsaved edits.
func (r *Registry) reload(path string) {
	r.mu.Lock()
	f, ok := r.byPath[path]
	if !ok || f.Dirty {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.WithError(err).WithField("path", path).Warn("failed to reload externally changed file")
		return
	}

	r.mu.Lock()
	if f, ok := r.byPath[path]; ok && !f.Dirty {
		f.Content = string(data)
	}
	r.mu.Unlock()
}

func (r *Registry) insertLocked(f *File) {
	r.byPath[f.Path] = f
	r.order = append(r.order, f.Path)
}
