package sealog

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/types"
)

// ConfigWatcher applies configuration file changes to a running logger.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchConfig watches the YAML file at path and applies changes to the
// logger's global minimum level and global field predicates as the file is
// rewritten. Handler topology, queue capacity and the secret key are fixed
// at construction and are not reloaded; changing those needs a new Logger.
//
// Files rewritten with an invalid config are ignored and reported through
// the logger's error handler, keeping the last good settings.
func (l *Logger) WatchConfig(path string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create config watcher")
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}

	w := &ConfigWatcher{watcher: watcher, done: make(chan struct{})}
	go w.run(l, path)
	return w, nil
}

func (w *ConfigWatcher) run(l *Logger, path string) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				l.onError("reload", "", err)
				continue
			}
			level, _ := types.ParseLevel(cfg.Level)
			l.SetLevel(level)
			l.SetGlobalFilters(cfg.Filters)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			l.onError("watch", "", err)
		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *ConfigWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
