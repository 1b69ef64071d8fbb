package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Bash0121/FHU-social-club/internal/api/metrics"
	"github.com/Bash0121/FHU-social-club/internal/core/domain"
	"github.com/Bash0121/FHU-social-club/internal/core/ports"
)

// SessionService owns the current user and member state. It is the
// only code allowed to mutate the session; screens read snapshots and
// subscribe to changes.
type SessionService struct {
	remote ports.RemoteService
	log    zerolog.Logger

	mu        sync.Mutex
	session   domain.Session
	listeners []func(domain.Session)

	initOnce sync.Once
}

var _ ports.SessionService = (*SessionService)(nil)

// NewSessionService returns a SessionService in the Initializing
// state. Call Init to run the startup sequence.
func NewSessionService(remote ports.RemoteService, log zerolog.Logger) *SessionService {
	return &SessionService{
		remote:  remote,
		log:     log,
		session: domain.Session{Status: domain.StatusInitializing},
	}
}

// Init performs the initialization sequence exactly once: fetch the
// current user, then (if present) the linked member. The status stays
// Initializing until both fetches complete.
func (s *SessionService) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		s.Refresh(ctx)
	})
}

// Refresh re-derives the session from the backend. Fetch failures are
// absorbed into an unauthenticated result: "not logged in" is the
// expected steady state, not an error.
func (s *SessionService) Refresh(ctx context.Context) {
	user, err := s.remote.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session refresh: user fetch failed, treating as signed out")
		user = nil
	}
	if user == nil {
		s.setState(domain.StatusUnauthenticated, nil, nil)
		return
	}

	member := s.fetchMember(ctx, user.ID)
	s.setState(domain.StatusAuthenticated, user, member)
}

// Snapshot returns a value copy of the current session. The returned
// User and Member are clones, so callers cannot mutate shared state.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSession(s.session)
}

// OnChange registers fn to be called after every state change. The
// callback receives a snapshot and runs outside the service lock.
func (s *SessionService) OnChange(fn func(domain.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Login opens a session for an existing identity. Switching accounts
// while already authenticated is rejected: log out first.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	if err := s.guardTransition(domain.StatusAuthenticated); err != nil {
		return err
	}

	user, err := s.remote.LoginWithEmail(ctx, email, password)
	if err != nil {
		return err
	}

	member := s.fetchMember(ctx, user.ID)
	s.setState(domain.StatusAuthenticated, user, member)
	s.log.Info().Str("user_id", user.ID).Msg("logged in")
	return nil
}

// Register creates an identity with a linked member profile and logs
// in. A profile-stage failure still authenticates the session — the
// identity and session exist, the member is absent — and the
// registration error is returned so the UI can report it. EnsureMember
// repairs that state later.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	if err := s.guardTransition(domain.StatusAuthenticated); err != nil {
		return err
	}

	user, regErr := s.remote.RegisterWithEmail(ctx, in)
	if regErr != nil {
		var re *domain.RegistrationError
		if !errors.As(regErr, &re) || re.Stage != domain.StageProfile {
			return regErr
		}
		// Identity and session were created; recover the user and
		// surface the partial failure to the caller.
		user, _ = s.remote.CurrentUser(ctx)
		if user == nil {
			return regErr
		}
	}

	member := s.fetchMember(ctx, user.ID)
	s.setState(domain.StatusAuthenticated, user, member)
	return regErr
}

// Logout clears the session. Always safe, even from Unauthenticated,
// and never fails: the remote call is best-effort.
func (s *SessionService) Logout(ctx context.Context) {
	s.remote.Logout(ctx)
	s.setState(domain.StatusUnauthenticated, nil, nil)
}

// EnsureMember creates the missing Member row for the authenticated
// user. It is the explicit repair step for a registration that failed
// at the profile stage; it is never invoked automatically.
func (s *SessionService) EnsureMember(ctx context.Context, profile ports.ProfileInput) (*domain.Member, error) {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		return nil, domain.ErrNoSession
	}
	if snap.Member != nil {
		return snap.Member, nil
	}

	first, last := domain.SplitName(snap.User.Name)
	created, err := s.remote.CreateMember(ctx, domain.Member{
		MemberID:     snap.User.ID,
		FirstName:    first,
		LastName:     last,
		Club:         profile.Club,
		EmailAddress: snap.User.Email,
		PhoneNumber:  profile.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.session.Authenticated() && s.session.User != nil && s.session.User.ID == snap.User.ID {
		s.session.Member = created
	}
	snapshot := cloneSession(s.session)
	listeners := append([]func(domain.Session){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return created, nil
}

// fetchMember loads the linked member, absorbing failures into an
// absent result. A conflict is logged loudly: it is a data-integrity
// violation, not an expected absence.
func (s *SessionService) fetchMember(ctx context.Context, userID string) *domain.Member {
	member, err := s.remote.MemberByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberConflict) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("member lookup hit a data-integrity violation")
		} else {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("member fetch failed")
		}
		return nil
	}
	return member
}

func (s *SessionService) guardTransition(next domain.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (s *SessionService) setState(status domain.SessionStatus, user *domain.User, member *domain.Member) {
	s.mu.Lock()
	changed := s.session.Status != status
	s.session = domain.Session{Status: status, User: user, Member: member}
	snapshot := cloneSession(s.session)
	listeners := append([]func(domain.Session){}, s.listeners...)
	s.mu.Unlock()

	if changed {
		metrics.SessionTransitionsTotal.WithLabelValues(string(status)).Inc()
	}
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func cloneSession(s domain.Session) domain.Session {
	out := domain.Session{Status: s.Status}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Member != nil {
		m := *s.Member
		out.Member = &m
	}
	return out
}
