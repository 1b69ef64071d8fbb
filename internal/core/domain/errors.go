package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrNoSession = errors.New("no active session")
var ErrMemberConflict = errors.New("multiple member rows share one memberId")
var ErrInvalidTransition = errors.New("invalid session status transition")

// RegistrationStage identifies how far a registration got before it
// failed.
type RegistrationStage string

const (
	StageIdentity RegistrationStage = "identity"
	StageSession  RegistrationStage = "session"
	StageProfile  RegistrationStage = "profile"
)

// RegistrationError reports a failed registration together with the
// stage that failed. A StageProfile failure means the identity and
// session already exist: the account is usable but has no Member row
// until an explicit repair step creates one.
type RegistrationError struct {
	Stage RegistrationStage
	Err   error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed at %s stage: %v", e.Stage, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
