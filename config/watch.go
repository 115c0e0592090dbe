package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/trickstertwo/multilog"
)

// Watch re-applies the level and enabled flag from path to d whenever the
// file changes, until ctx is done. Sinks are not rebuilt. Reload failures
// go to onErr (which may be nil) and leave d unchanged.
//
// The parent directory is watched, not the file, so editors that save by
// rename keep being followed.
func Watch(ctx context.Context, path string, d *multilog.Dispatcher, onErr func(error)) error {
	if onErr == nil {
		onErr = func(error) {}
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "config: create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "config: watch %s", path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			f, err := Load(path)
			if err != nil {
				onErr(err)
				continue
			}
			if err := Apply(d, f); err != nil {
				onErr(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onErr(errors.Wrap(err, "config: watcher"))
		}
	}
}
