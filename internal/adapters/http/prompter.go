package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

var (
	ErrNoPendingPrompt = errors.New("no pending prompt")
	ErrPromptTimeout   = errors.New("prompt timed out")
)

// UIPrompter parks each capability request until the browser answers it
// through the API or the timeout elapses.
type UIPrompter struct {
	timeout time.Duration

	mu      sync.Mutex
	pending map[domain.Capability]chan bool
}

var _ core.PermissionPrompter = (*UIPrompter)(nil)

func NewUIPrompter(timeout time.Duration) *UIPrompter {
	return &UIPrompter{
		timeout: timeout,
		pending: make(map[domain.Capability]chan bool),
	}
}

func (p *UIPrompter) Request(ctx context.Context, c domain.Capability) (bool, error) {
	answer := make(chan bool, 1)

	p.mu.Lock()
	if old, ok := p.pending[c]; ok {
		old <- false
	}
	p.pending[c] = answer
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.pending[c] == answer {
			delete(p.pending, c)
		}
		p.mu.Unlock()
	}()

	log.Info().Str("module", "adapters.http").Str("capability", string(c)).Msg("waiting for permission answer")

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	select {
	case granted := <-answer:
		return granted, nil
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
		return false, ErrPromptTimeout
	}
}

// Answer resolves the outstanding prompt for c.
func (p *UIPrompter) Answer(c domain.Capability, granted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	answer, ok := p.pending[c]
	if !ok {
		return ErrNoPendingPrompt
	}
	delete(p.pending, c)
	answer <- granted
	return nil
}

// Pending lists capabilities waiting for an answer, in prompt order.
func (p *UIPrompter) Pending() []domain.Capability {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Capability, 0, len(p.pending))
	for _, c := range domain.RequiredCapabilities {
		if _, ok := p.pending[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// AutoPrompter answers every prompt with the same decision.
type AutoPrompter struct {
	Grant bool
}

func (a AutoPrompter) Request(ctx context.Context, _ domain.Capability) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return a.Grant, nil
}
