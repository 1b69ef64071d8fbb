package domain

// SessionStatus represents the lifecycle state of the client session.
type SessionStatus string

const (
	StatusInitializing    SessionStatus = "initializing"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// validTransitions defines the allowed state machine transitions.
// There is no Authenticated→Authenticated edge: switching accounts
// requires a logout followed by a login.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusInitializing:    {StatusAuthenticated, StatusUnauthenticated},
	StatusAuthenticated:   {StatusUnauthenticated},
	StatusUnauthenticated: {StatusAuthenticated},
}

// CanTransitionTo reports whether moving from the current status to
// next is a valid state machine step.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the client's view of who is logged in. User may be set
// while Member is nil: the profile row is provisioned separately and
// its absence is a representable steady state, not an error.
type Session struct {
	User   *User
	Member *Member
	Status SessionStatus
}

// Authenticated reports whether the session reached the authenticated
// terminal state. Consumers must treat StatusInitializing as "not yet
// known" and render a loading affordance instead of reading User.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
