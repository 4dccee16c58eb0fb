package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/morler/texwatch/logger"
)

// Notifier turns filesystem events for one file into wake-ups for the loop.
// A wake-up only shortens the wait; whether to compile is still decided by
// comparing modification times.
type Notifier struct {
	w    *fsnotify.Watcher
	path string
	wake chan struct{}
	done chan struct{}
}

// NewNotifier watches the directory containing path. Editors often replace the
// file on save, so watching the file itself would lose track of it.
func NewNotifier(path string) (*Notifier, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	n := &Notifier{
		w:    fw,
		path: filepath.Clean(path),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go n.loop()
	return n, nil
}

// Wake delivers at most one pending wake-up at a time.
func (n *Notifier) Wake() <-chan struct{} {
	return n.wake
}

// Close stops the notifier.
func (n *Notifier) Close() error {
	err := n.w.Close()
	<-n.done
	return err
}

func (n *Notifier) loop() {
	defer close(n.done)

	for {
		select {
		case event, ok := <-n.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != n.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case n.wake <- struct{}{}:
			default:
			}

		case err, ok := <-n.w.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Warnf("file notifier error")
		}
	}
}
