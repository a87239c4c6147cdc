package reconcile

// Executor runs remote work away from the event loop. Work performs the
// remote call and returns a continuation; the executor must run that
// continuation on the event loop, never concurrently with other handlers.
type Executor interface {
	Execute(work func() func())
}

// Inline runs work and its continuation immediately on the calling goroutine.
type Inline struct{}

func (Inline) Execute(work func() func()) {
	if next := work(); next != nil {
		next()
	}
}
