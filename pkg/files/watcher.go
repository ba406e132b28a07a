package files

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hardcoreai/shell/logging"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// defaultIgnorePatterns filters out build artifacts that PlatformIO and
// editors produce next to the sources.
var defaultIgnorePatterns = []string{
	".pio/**",
	".git/**",
	"**/*.o",
	"**/*.bin",
	"**/*.elf",
	"**/*.swp",
	"**/*~",
}

// Watcher reloads open, non-dirty buffers when their file changes on
// disk outside the shell (an external editor, or the backend writing a
// project). Changes are debounced per path.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	matcher  *patternmatcher.PatternMatcher
	root     string
	debounce time.Duration
	logger   *logrus.Entry

	lastEvent map[string]time.Time
}

// NewWatcher creates a watcher over root for the given registry.
func NewWatcher(registry *Registry, root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	matcher, err := patternmatcher.New(defaultIgnorePatterns)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		registry:  registry,
		watcher:   fsw,
		matcher:   matcher,
		root:      root,
		debounce:  200 * time.Millisecond,
		logger:    logging.NewLogger("file-watcher"),
		lastEvent: make(map[string]time.Time),
	}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	if ignored, err := w.matcher.MatchesOrParentMatches(rel); err == nil && ignored {
		return
	}

	// Editors often emit bursts of writes for a single save.
	now := time.Now()
	if last, ok := w.lastEvent[event.Name]; ok && now.Sub(last) < w.debounce {
		return
	}
	w.lastEvent[event.Name] = now

	if _, open := w.registry.Get(event.Name); !open {
		return
	}

	w.logger.WithField("path", event.Name).Debug("external change, reloading buffer")
	w.registry.reload(event.Name)
}
