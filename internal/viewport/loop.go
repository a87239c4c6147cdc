package viewport

import (
	"context"
	"log/slog"
	"sync"
)

// Loop is a single-threaded event loop. Every gesture handler and every
// remote continuation runs on it, one at a time.
type Loop struct {
	events  chan func()
	stopped chan struct{}
	stop    sync.Once
	logger  *slog.Logger
}

func NewLoop(buffer int, logger *slog.Logger) *Loop {
	return &Loop{
		events:  make(chan func(), buffer),
		stopped: make(chan struct{}),
		logger:  logger.With("system", "loop"),
	}
}

// Post queues fn to run on the loop. It is safe to call from any goroutine.
// Once the loop has stopped, fn is dropped instead of blocking the caller.
func (l *Loop) Post(fn func()) {
	select {
	case l.events <- fn:
	case <-l.stopped:
		l.logger.Debug("event dropped after loop stopped")
	}
}

// Run processes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.stop.Do(func() { close(l.stopped) })
			l.logger.Debug("event loop stopped")
			return
		case fn := <-l.events:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", "panic", r)
		}
	}()
	fn()
}

// Execute runs work on its own goroutine and posts the continuation back to
// the loop, making Loop a reconcile.Executor.
func (l *Loop) Execute(work func() func()) {
	go func() {
		if next := work(); next != nil {
			l.Post(next)
		}
	}()
}
