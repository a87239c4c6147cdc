// Package middleware provides composable HTTP middleware for the service API.
package middleware

import "net/http"

// System collects middleware and applies them in registration order, the
// first registered being the outermost.
type System struct {
	stack []func(http.Handler) http.Handler
}

func New() *System {
	return &System{}
}

func (s *System) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

func (s *System) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
