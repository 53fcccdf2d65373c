package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/VideoCall/internal/core"
	"github.com/dkeye/VideoCall/internal/domain"
)

// PermissionGate asks for the required device capabilities one at a time.
// Capabilities granted earlier are not prompted again when the gate is reused.
type PermissionGate struct {
	prompter core.PermissionPrompter

	mu    sync.RWMutex
	state domain.PermissionState
}

func NewPermissionGate(p core.PermissionPrompter) *PermissionGate {
	return &PermissionGate{
		prompter: p,
		state:    domain.NewPermissionState(),
	}
}

// Request prompts for a single capability and blocks until answered.
// A prompter error or a done ctx counts as a denial.
func (g *PermissionGate) Request(ctx context.Context, c domain.Capability) bool {
	g.set(c, domain.PermissionRequested)

	granted, err := g.prompter.Request(ctx, c)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.permissions").Str("capability", string(c)).Msg("prompt failed")
		granted = false
	}
	if granted {
		g.set(c, domain.PermissionGranted)
	} else {
		g.set(c, domain.PermissionDenied)
	}
	log.Info().Str("module", "app.permissions").Str("capability", string(c)).Bool("granted", granted).Msg("permission answered")
	return granted
}

// RequestAll asks for microphone, then camera. The first denial stops the
// sequence and is returned as *domain.PermissionDeniedError.
func (g *PermissionGate) RequestAll(ctx context.Context) error {
	for _, c := range domain.RequiredCapabilities {
		if g.status(c) == domain.PermissionGranted {
			continue
		}
		if !g.Request(ctx, c) {
			return &domain.PermissionDeniedError{Capability: c}
		}
	}
	return nil
}

// State returns a copy of the per-capability status.
func (g *PermissionGate) State() domain.PermissionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Clone()
}

func (g *PermissionGate) status(c domain.Capability) domain.PermissionStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state[c]
}

func (g *PermissionGate) set(c domain.Capability, s domain.PermissionStatus) {
	g.mu.Lock()
	g.state[c] = s
	g.mu.Unlock()
}
