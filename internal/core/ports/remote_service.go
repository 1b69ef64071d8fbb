package ports

import (
	"context"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
)

// RegisterInput carries everything needed to create an identity and
// its linked member profile in one flow.
type RegisterInput struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8"`
	DisplayName string `validate:"required"`
	Club        string
	PhoneNumber string
}

// ProfileInput holds the profile extras used when provisioning a
// Member row for an already-registered identity.
type ProfileInput struct {
	Club        string
	PhoneNumber string
}

// RemoteService is the single point of contact with the hosted
// backend. All operations hit the network and may be slow or fail on
// connectivity.
//
// Absence conventions: CurrentUser and MemberByUserID return
// (nil, nil) when no matching record exists — "not logged in" and
// "profile not provisioned" are expected steady states, not failures.
type RemoteService interface {
	// RegisterWithEmail creates an identity, opens a session, then
	// creates exactly one linked Member row. Failures carry a
	// *domain.RegistrationError tagging the stage that failed; a
	// failure after the identity stage leaves an orphaned identity
	// with no Member row.
	RegisterWithEmail(ctx context.Context, in RegisterInput) (*domain.User, error)

	// LoginWithEmail opens a session for an existing identity.
	// Returns domain.ErrInvalidCredentials on bad credentials.
	LoginWithEmail(ctx context.Context, email, password string) (*domain.User, error)

	// CurrentUser returns the authenticated identity, or (nil, nil)
	// when no valid session exists.
	CurrentUser(ctx context.Context) (*domain.User, error)

	// Logout invalidates the current session best-effort: the local
	// token is cleared unconditionally and remote failures are logged,
	// never propagated.
	Logout(ctx context.Context)

	// MemberByUserID looks up the Member row whose memberId equals id,
	// limit 1. (nil, nil) on zero rows; domain.ErrMemberConflict when
	// the backend reports more than one matching row.
	MemberByUserID(ctx context.Context, id string) (*domain.Member, error)

	// Members lists the members collection in backend order.
	Members(ctx context.Context) ([]domain.Member, error)

	CreateMember(ctx context.Context, member domain.Member) (*domain.Member, error)
	UpdateMember(ctx context.Context, id string, patch domain.MemberPatch) (*domain.Member, error)

	// Events lists the events collection ordered ascending by
	// eventDate. A fetch failure is returned as an error so callers
	// can tell it apart from a genuinely empty collection.
	Events(ctx context.Context) ([]domain.EventRecord, error)
}
