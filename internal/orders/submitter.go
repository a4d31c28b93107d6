package orders

import (
	"context"
	"sync"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
)

// Submitter serializes order submission for one session: a second submit
// while the first is still running is rejected instead of queued, and the
// outcome of the last attempt stays readable for status display.
type Submitter struct {
	mu         sync.Mutex
	submitting bool
	lastErr    error
}

// Submit runs fn unless a submission is already in flight. The error of the
// losing attempt is not recorded; only real attempts update the last error.
func (s *Submitter) Submit(ctx context.Context, fn func(ctx context.Context) (*models.Order, error)) (*models.Order, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an order submission is already in progress")
	}
	s.submitting = true
	s.mu.Unlock()

	order, err := fn(ctx)

	s.mu.Lock()
	s.submitting = false
	s.lastErr = err
	s.mu.Unlock()

	return order, err
}

// IsSubmitting reports whether a submission is currently in flight.
func (s *Submitter) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// LastError returns the outcome of the most recent completed submission.
func (s *Submitter) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SubmitterPool hands out one Submitter per session.
type SubmitterPool struct {
	mu         sync.Mutex
	submitters map[string]*Submitter
}

// NewSubmitterPool builds an empty pool.
func NewSubmitterPool() *SubmitterPool {
	return &SubmitterPool{submitters: map[string]*Submitter{}}
}

// For returns the session's submitter, creating it on first use.
func (p *SubmitterPool) For(sessionID string) *Submitter {
	p.mu.Lock()
	defer p.mu.Unlock()
	sub, ok := p.submitters[sessionID]
	if !ok {
		sub = &Submitter{}
		p.submitters[sessionID] = sub
	}
	return sub
}
