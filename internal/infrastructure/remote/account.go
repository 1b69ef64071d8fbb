package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
	"github.com/Bash0121/FHU-social-club/internal/core/ports"
)

var validate = validator.New()

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	Expires string `json:"expires"`
}

// RegisterWithEmail creates an identity, opens a session, then creates
// exactly one linked Member row. Each failure is tagged with the stage
// it occurred in. A failure after the identity stage leaves an
// orphaned identity with no Member row; that window is accepted and
// repaired explicitly via member creation, never hidden.
func (c *Client) RegisterWithEmail(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, &domain.RegistrationError{Stage: domain.StageIdentity, Err: err}
	}

	create := createAccountRequest{
		UserID:   uuid.NewString(),
		Email:    in.Email,
		Password: in.Password,
		Name:     in.DisplayName,
	}
	if err := c.do(ctx, "register", http.MethodPost, "/v1/account", create, nil); err != nil {
		var ae *apiError
		if errors.As(err, &ae) && ae.Status == http.StatusConflict {
			err = domain.ErrUserExists
		}
		return nil, &domain.RegistrationError{Stage: domain.StageIdentity, Err: err}
	}

	user, err := c.openSession(ctx, in.Email, in.Password)
	if err != nil {
		return nil, &domain.RegistrationError{Stage: domain.StageSession, Err: err}
	}

	first, last := domain.SplitName(in.DisplayName)
	_, err = c.CreateMember(ctx, domain.Member{
		MemberID:     user.ID,
		FirstName:    first,
		LastName:     last,
		Club:         in.Club,
		EmailAddress: in.Email,
		PhoneNumber:  in.PhoneNumber,
	})
	if err != nil {
		return nil, &domain.RegistrationError{Stage: domain.StageProfile, Err: err}
	}

	return user, nil
}

// LoginWithEmail opens a session for an existing identity.
func (c *Client) LoginWithEmail(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := c.openSession(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

func (c *Client) openSession(ctx context.Context, email, password string) (*domain.User, error) {
	var session sessionResponse
	err := c.do(ctx, "create_session", http.MethodPost, "/v1/account/sessions/email",
		createSessionRequest{Email: email, Password: password}, &session)
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) && ae.Status == http.StatusUnauthorized {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	c.setSessionToken(session.Token)

	var user domain.User
	if err := c.do(ctx, "current_user", http.MethodGet, "/v1/account", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the authenticated identity, or (nil, nil) when
// no valid session exists. The error path is deliberately absorbed:
// "not logged in" is an expected steady state. Transport failures are
// logged and also resolve to absent.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	token := c.sessionToken()
	if token == "" {
		return nil, nil
	}
	if tokenExpired(token) {
		c.setSessionToken("")
		return nil, nil
	}

	var user domain.User
	if err := c.do(ctx, "current_user", http.MethodGet, "/v1/account", nil, &user); err != nil {
		var ae *apiError
		if errors.As(err, &ae) && ae.Status == http.StatusUnauthorized {
			c.setSessionToken("")
			return nil, nil
		}
		c.log.Warn().Err(err).Msg("current user fetch failed, treating as signed out")
		return nil, nil
	}
	return &user, nil
}

// Logout invalidates the current device's session best-effort. The
// local token is cleared unconditionally: a user must always be able
// to leave their authenticated state even with degraded connectivity.
func (c *Client) Logout(ctx context.Context) {
	if c.sessionToken() != "" {
		if err := c.do(ctx, "logout", http.MethodDelete, "/v1/account/sessions/current", nil, nil); err != nil {
			c.log.Warn().Err(err).Msg("remote session delete failed, clearing local session anyway")
		}
	}
	c.setSessionToken("")
}

// tokenExpired inspects the stored token's exp claim without verifying
// the signature — verification is the backend's job; this only avoids
// a round trip that is guaranteed to come back 401.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
