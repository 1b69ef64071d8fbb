package ports

import (
	"context"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
)

// SessionService is the single source of truth for who is logged in
// and what their club membership is. Every consumer gates rendering on
// Snapshot().Status and scopes directory queries by the member's club.
type SessionService interface {
	// Init runs the initialization sequence exactly once: fetch the
	// current user, then (if present) the linked member, and only then
	// report a terminal status. Subsequent calls are no-ops.
	Init(ctx context.Context)

	// Snapshot returns a value copy of the current session.
	Snapshot() domain.Session

	// OnChange registers fn to be called after every state change.
	OnChange(fn func(domain.Session))

	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, in RegisterInput) error

	// Logout is safe from any state and never fails: local state is
	// cleared unconditionally even when the remote call does not
	// succeed.
	Logout(ctx context.Context)

	// Refresh re-runs the user/member fetch sequence.
	Refresh(ctx context.Context)

	// EnsureMember is the explicit repair step for the partial
	// registration window: it creates the missing Member row for the
	// authenticated user. No-op when the member already exists.
	EnsureMember(ctx context.Context, profile ProfileInput) (*domain.Member, error)
}
