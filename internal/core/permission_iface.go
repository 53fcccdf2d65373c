package core

//go:generate mockgen -source=permission_iface.go -destination=mock/permission_iface.go -package=mock_core

import (
	"context"

	"github.com/dkeye/VideoCall/internal/domain"
)

// PermissionPrompter shows an OS-level (or UI-level) prompt and blocks until
// the user answers or ctx is done.
type PermissionPrompter interface {
	Request(ctx context.Context, c domain.Capability) (granted bool, err error)
}
