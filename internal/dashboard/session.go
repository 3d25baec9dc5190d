package dashboard

import (
	"context"
	"sync"

	"allstock/internal/provider"
)

// Session serializes interactive searches. Starting a search cancels the one
// in flight, and a result that finishes after a newer search started is
// discarded.
type Session struct {
	pipeline *Pipeline

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current provider.Symbol
}

func NewSession(p *Pipeline) *Session {
	return &Session{pipeline: p}
}

// Search normalizes raw and runs the pipeline. Blank input returns
// provider.ErrEmptySymbol without touching any source.
func (s *Session) Search(ctx context.Context, raw string) (Result, error) {
	sym, err := provider.NormalizeSymbol(raw)
	if err != nil {
		return Result{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	res := s.pipeline.Run(runCtx, sym)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		cancel()
		return Result{}, ErrSuperseded
	}
	cancel()
	s.cancel = nil
	s.current = sym
	return res, nil
}

// Current is the symbol of the last search that completed without being superseded.
func (s *Session) Current() provider.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
