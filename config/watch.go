package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

type ChangeKind int

const (
	ConfigChanged ChangeKind = iota
	SpritesChanged
)

func (k ChangeKind) String() string {
	if k == SpritesChanged {
		return "sprites"
	}
	return "config"
}

// Change is one debounced file event.
type Change struct {
	Kind ChangeKind
	Path string
}

// Watcher reports edits to the config file and to sprite PNGs in the assets
// directory so a running editor can reload them.
type Watcher struct {
	fsw        *fsnotify.Watcher
	configPath string
	assetsDir  string

	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding configPath and, when assetsDir is
// not empty, the assets directory too.
func NewWatcher(configPath, assetsDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	if configPath != "" {
		w.configPath = filepath.Clean(configPath)
		if err := fsw.Add(filepath.Dir(w.configPath)); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	if assetsDir != "" {
		w.assetsDir = filepath.Clean(assetsDir)
		if err := fsw.Add(w.assetsDir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) classify(name string) (ChangeKind, bool) {
	name = filepath.Clean(name)
	if w.configPath != "" && name == w.configPath {
		return ConfigChanged, true
	}
	if w.assetsDir != "" && filepath.Dir(name) == w.assetsDir &&
		strings.EqualFold(filepath.Ext(name), ".png") {
		return SpritesChanged, true
	}
	return 0, false
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := w.classify(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[ev.Name]; seen && now.Sub(t) < debounce {
				continue
			}
			last[ev.Name] = now
			select {
			case w.Events <- Change{Kind: kind, Path: ev.Name}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fsw.Errors:
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
