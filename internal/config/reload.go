package config

import (
	"github.com/dshills/linecore/internal/config/loader"
	"github.com/dshills/linecore/internal/config/watcher"
)

// ReloadFunc receives freshly loaded settings after a settings file
// changed, or the error that prevented loading them. changed is the
// absolute path of the file that triggered the reload.
type ReloadFunc func(changed string, s Settings, err error)

// Watch reloads paths and overrides, as Load does, whenever one of the
// files changes, and passes the result to fn. fn runs on the watcher's
// goroutine. Close the returned watcher to stop.
func (l *Loader) Watch(paths []string, overrides map[string]any, fn ReloadFunc, opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(func(changed string) {
		s, err := l.Load(paths, overrides)
		fn(changed, s, err)
	}, opts...)
	if err != nil {
		return nil, err
	}

	for _, p := range paths {
		expanded, err := loader.ExpandPath(p)
		if err == nil {
			err = w.Watch(expanded)
		}
		if err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return w, nil
}
