package reconcile

import "log/slog"

// Notice is a user-visible message raised by the synchronization layer.
type Notice struct {
	Level   slog.Level
	Message string
	Err     error
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
