// Package viewstate holds the fetch/loading/error state shared by the admin
// views.
//
// A Loader owns one view's last snapshot. Every Load gets a new generation
// number; only the completion of the newest generation may write state, and
// only while the view is mounted. Older requests are cancelled when a newer
// one is issued, and everything is cancelled on Unmount.
package viewstate

import (
	"context"
	"log/slog"
	"sync"
)

// Snapshot is a copy of a loader's state. Data is shared with the loader
// and must be treated as read-only.
type Snapshot[T any] struct {
	Data       T
	HasData    bool
	Loading    bool
	Error      string
	Generation uint64
}

type FetchFunc[T any] func(ctx context.Context) (T, error)

type Option func(*options)

type options struct {
	logger  *slog.Logger
	message func(error) string
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithErrorMessage sets how a fetch error becomes the displayed message.
func WithErrorMessage(fn func(error) string) Option {
	return func(o *options) { o.message = fn }
}

type Loader[T any] struct {
	name    string
	logger  *slog.Logger
	message func(error) string

	mu       sync.Mutex
	mounted  bool
	cancel   context.CancelFunc
	ctx      context.Context
	inflight context.CancelFunc
	gen      uint64
	snap     Snapshot[T]
	idle     chan struct{}
	settled  bool
	onChange func()
}

// NewLoader returns an unmounted loader. Its snapshot starts in the loading
// state because nothing has been fetched yet.
func NewLoader[T any](name string, opts ...Option) *Loader[T] {
	o := options{
		logger:  slog.Default(),
		message: func(err error) string { return err.Error() },
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &Loader[T]{
		name:    name,
		logger:  o.logger,
		message: o.message,
		snap:    Snapshot[T]{Loading: true},
		idle:    make(chan struct{}),
	}
}

// OnChange registers fn to be called after every state change. fn runs
// outside the loader lock and may read Snapshot.
func (l *Loader[T]) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Mount activates the loader. It reports false if it was already mounted.
func (l *Loader[T]) Mount(parent context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mounted {
		return false
	}
	l.ctx, l.cancel = context.WithCancel(parent)
	l.mounted = true
	// state never survives a remount; bumping gen also orphans completions
	// from the previous mount
	l.gen++
	l.snap = Snapshot[T]{Loading: true, Generation: l.gen}
	if l.settled {
		l.idle = make(chan struct{})
		l.settled = false
	}
	return true
}

// Unmount cancels outstanding requests. Completions that arrive afterwards
// are discarded.
func (l *Loader[T]) Unmount() {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		return
	}
	l.mounted = false
	l.cancel()
	l.inflight = nil
	l.markSettled()
	l.mu.Unlock()
}

func (l *Loader[T]) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}

// Load issues fetch as the newest generation. It returns the generation
// and false when the loader is not mounted.
func (l *Loader[T]) Load(fetch FetchFunc[T]) (uint64, bool) {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		return 0, false
	}
	if l.inflight != nil {
		l.inflight()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(l.ctx)
	l.inflight = cancel

	if l.settled {
		l.idle = make(chan struct{})
		l.settled = false
	}
	l.snap.Loading = true
	l.snap.Generation = gen
	notify := l.onChange
	l.mu.Unlock()

	if notify != nil {
		notify()
	}

	go func() {
		defer cancel()
		data, err := fetch(ctx)
		l.complete(gen, data, err)
	}()
	return gen, true
}

func (l *Loader[T]) complete(gen uint64, data T, err error) {
	l.mu.Lock()
	if !l.mounted {
		l.mu.Unlock()
		l.logger.Debug("viewstate_drop_unmounted", slog.String("view", l.name), slog.Uint64("gen", gen))
		return
	}
	if gen != l.gen {
		current := l.gen
		l.mu.Unlock()
		l.logger.Debug("viewstate_drop_stale",
			slog.String("view", l.name),
			slog.Uint64("gen", gen),
			slog.Uint64("current", current),
		)
		return
	}

	l.inflight = nil
	l.snap.Loading = false
	if err != nil {
		l.snap.Error = l.message(err)
	} else {
		l.snap.Data = data
		l.snap.HasData = true
		l.snap.Error = ""
	}
	l.markSettled()
	notify := l.onChange
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("viewstate_fetch_failed",
			slog.String("view", l.name),
			slog.Uint64("gen", gen),
			slog.Any("err", err),
		)
	}
	if notify != nil {
		notify()
	}
}

// markSettled must be called with l.mu held.
func (l *Loader[T]) markSettled() {
	if !l.settled {
		close(l.idle)
		l.settled = true
	}
}

func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// WaitIdle blocks until the newest issued request has settled, the loader
// is unmounted, or ctx is done.
func (l *Loader[T]) WaitIdle(ctx context.Context) error {
	l.mu.Lock()
	if !l.mounted || l.settled {
		l.mu.Unlock()
		return nil
	}
	ch := l.idle
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
