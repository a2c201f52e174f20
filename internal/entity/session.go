package entity

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionResolvingRole   SessionState = "resolving_role"
	SessionReady           SessionState = "ready"
	SessionError           SessionState = "error"
)

type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

func (i Identity) IsZero() bool {
	return i.Email == ""
}

// Session is an immutable value. Every transition returns a new Session and
// leaves the receiver untouched. The zero value is an unauthenticated session.
type Session struct {
	state    SessionState
	identity Identity
	role     Role
	matrix   PermissionMatrix
	err      error
}

func (s Session) State() SessionState {
	if s.state == "" {
		return SessionUnauthenticated
	}

	return s.state
}

func (s Session) Identity() Identity       { return s.identity }
func (s Session) Role() Role               { return s.role }
func (s Session) Matrix() PermissionMatrix { return s.matrix }
func (s Session) Err() error               { return s.err }
func (s Session) IsReady() bool            { return s.State() == SessionReady }

// SignIn starts role resolution for identity. A ready or failed session may be
// signed in again, which discards its matrix.
func (s Session) SignIn(identity Identity) (Session, error) {
	if identity.IsZero() {
		return s, fmt.Errorf("%w: empty identity", ErrUnauthorized)
	}

	if s.State() == SessionResolvingRole {
		return s, fmt.Errorf("%w: sign in while %s", ErrInvalidSessionTransition, s.State())
	}

	return Session{state: SessionResolvingRole, identity: identity}, nil
}

// Resolve completes role resolution with a freshly built matrix.
func (s Session) Resolve(role Role) (Session, error) {
	if s.State() != SessionResolvingRole {
		return s, fmt.Errorf("%w: resolve while %s", ErrInvalidSessionTransition, s.State())
	}

	role = ParseRole(string(role))

	return Session{
		state:    SessionReady,
		identity: s.identity,
		role:     role,
		matrix:   BuildMatrix(role),
	}, nil
}

// Fail marks the session unusable. Only an unavailable identity provider gets
// here; failed role lookups resolve to RoleUser instead.
func (s Session) Fail(err error) (Session, error) {
	if s.State() != SessionResolvingRole && s.State() != SessionUnauthenticated {
		return s, fmt.Errorf("%w: fail while %s", ErrInvalidSessionTransition, s.State())
	}

	return Session{state: SessionError, identity: s.identity, err: err}, nil
}

func (s Session) SignOut() Session {
	return Session{state: SessionUnauthenticated}
}

// HasPermission is fail-closed outside of the ready state.
func (s Session) HasPermission(module Module, action Action) bool {
	return s.IsReady() && s.matrix.HasPermission(module, action)
}

func (s Session) CanAccessModule(module Module) bool {
	return s.IsReady() && s.matrix.CanAccessModule(module)
}
