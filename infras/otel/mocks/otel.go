// Package mocks provides an in-memory Otel that keeps every scope it opens, so tests can assert
// what a handler or service traced.
package mocks

import (
	"context"
	"sync"

	"hotelledger/infras/otel"
)

type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewScope().(*Scope)
	scope.Name = spanName

	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns the scopes opened so far, oldest first.
func (r *Recorder) Scopes() []*Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Scope(nil), r.scopes...)
}

// Find returns the first scope opened with spanName.
func (r *Recorder) Find(spanName string) (*Scope, bool) {
	for _, scope := range r.Scopes() {
		if scope.Name == spanName {
			return scope, true
		}
	}

	return nil, false
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func NewOtel() otel.Otel {
	return NewRecorder()
}
