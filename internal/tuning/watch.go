package tuning

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FileWatcher polls modification times and calls onChange for every file
// that changed since the previous scan.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration

	onChange func(string)
	stopCh   chan struct{}
	stopOnce sync.Once
	lastMod  map[string]time.Time
}

func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:    paths,
		Interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		lastMod:  make(map[string]time.Time),
	}
}

// Start records the current mtimes and polls in a goroutine.
func (w *FileWatcher) Start() {
	w.scan(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *FileWatcher) scan(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, seen := w.lastMod[p]
		w.lastMod[p] = mt
		if prime {
			continue
		}
		// a file that appears after start counts as a change
		if (!seen || mt.After(last)) && w.onChange != nil {
			w.onChange(p)
		}
	}
}

// Reloader re-reads tuning on change and hands valid params to apply.
// Invalid documents are logged and the previous params stay in force.
type Reloader struct {
	loader *Loader
	apply  func(Params)
	log    *logrus.Entry
}

func NewReloader(l *Loader, apply func(Params), log *logrus.Entry) *Reloader {
	return &Reloader{loader: l, apply: apply, log: log}
}

// OnChange is a FileWatcher callback.
func (r *Reloader) OnChange(path string) {
	r.loader.Invalidate()
	p, err := r.loader.Params()
	if err != nil {
		r.log.WithError(err).WithField("path", path).Error("tuning reload rejected")
		return
	}
	r.apply(p)
	r.log.WithFields(logrus.Fields{"path": path, "version": p.Version}).Info("tuning reloaded")
}
