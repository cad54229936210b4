package tracklist

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	zlog "github.com/rs/zerolog/log"

	"github.com/llehouerou/folderplay/internal/player"
)

var reloadDebounce = 500 * time.Millisecond

// Watcher reloads a folder's track list when music files appear, disappear
// or are renamed. Bursts of events are coalesced into one reload.
type Watcher struct {
	folder   string
	fs       *fsnotify.Watcher
	updates  chan []Track
	done     chan struct{}
	debounce time.Duration
	once     sync.Once
}

// Watch starts watching folder.
func Watch(folder string) (*Watcher, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", folder)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := fw.Add(abs); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", abs)
	}

	w := &Watcher{
		folder:   abs,
		fs:       fw,
		updates:  make(chan []Track, 1),
		done:     make(chan struct{}),
		debounce: reloadDebounce,
	}
	go w.loop()
	return w, nil
}

// Folder returns the watched folder.
func (w *Watcher) Folder() string { return w.folder }

// Updates delivers the reloaded track list. Only the latest list is kept
// if the reader falls behind. The channel is closed once the watcher stops.
func (w *Watcher) Updates() <-chan []Track { return w.updates }

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.updates)
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			zlog.Warn().Err(err).Str("folder", w.folder).Msg("folder watch error")
		case <-fire:
			fire = nil
			tracks, err := Load(w.folder)
			if err != nil {
				zlog.Warn().Err(err).Str("folder", w.folder).Msg("reload track list")
				continue
			}
			w.publish(tracks)
		}
	}
}

func (w *Watcher) publish(tracks []Track) {
	select {
	case w.updates <- tracks:
		return
	default:
	}
	// Replace the stale pending list.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- tracks:
	default:
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return player.IsMusicFile(ev.Name)
}
