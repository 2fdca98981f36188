package mocks

import (
	"context"
	"sync"

	"guesthouse/infras/otel"
)

// Recorder is an otel.Otel that keeps every span it opens so tests can inspect them.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}
	r.spans = append(r.spans, span)

	return ctx, &scopeImpl{mu: &r.mu, span: span}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Span returns a copy of the first span opened with the given name.
func (r *Recorder) Span(name string) (Span, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, span := range r.spans {
		if span.Name == name {
			return *span, true
		}
	}

	return Span{}, false
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func NewOtel() otel.Otel {
	return NewRecorder()
}
