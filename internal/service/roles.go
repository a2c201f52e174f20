package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/metrics"
)

// Authenticate verifies the bearer token and walks a fresh session through
// role resolution. Invalid tokens leave the caller unauthenticated; an
// unavailable identity provider moves the session into the error state.
func (s *Service) Authenticate(ctx context.Context, token string) (entity.Session, error) {
	var session entity.Session

	identity, err := s.identity.Verify(token)
	if err != nil {
		if errors.Is(err, entity.ErrIdentityProviderUnavailable) {
			failed, _ := session.Fail(err)
			return failed, err
		}

		return session, fmt.Errorf("verify token: %w", err)
	}

	return s.Session(ctx, identity)
}

// Session resolves the role of identity and returns a ready session.
func (s *Service) Session(ctx context.Context, identity entity.Identity) (entity.Session, error) {
	resolving, err := entity.Session{}.SignIn(identity)
	if err != nil {
		return entity.Session{}, err
	}

	return resolving.Resolve(s.ResolveRole(ctx, identity.Email))
}

// RefreshSession drops the cached role of the caller and resolves it again.
func (s *Service) RefreshSession(ctx context.Context, session entity.Session) (entity.Session, error) {
	if !session.IsReady() {
		return entity.Session{}, entity.ErrUnauthorized
	}

	s.InvalidateRole(ctx, session.Identity().Email)

	return s.Session(ctx, session.Identity())
}

// ResolveRole never fails: lookup errors degrade to RoleUser without retry.
func (s *Service) ResolveRole(ctx context.Context, email string) entity.Role {
	email = normalizeEmail(email)

	if s.roleCache != nil {
		role, err := s.roleCache.Role(ctx, email)
		if err == nil {
			metrics.RoleResolutions.WithLabelValues("cache").Inc()
			return entity.ParseRole(string(role))
		}

		if !errors.Is(err, entity.ErrNotFound) {
			slog.WarnContext(ctx, "role cache read failed", "error", err)
		}
	}

	role, err := s.users.RoleByEmail(ctx, email)
	if err != nil {
		metrics.RoleResolutions.WithLabelValues("fallback").Inc()
		slog.WarnContext(ctx, "role lookup failed, using least privileged role", "error", err)

		return entity.RoleUser
	}

	metrics.RoleResolutions.WithLabelValues("store").Inc()

	role = entity.ParseRole(string(role))

	if s.roleCache != nil {
		err = s.roleCache.SetRole(ctx, email, role, s.roleCacheTTL)
		if err != nil {
			slog.WarnContext(ctx, "role cache write failed", "error", err)
		}
	}

	return role
}

func (s *Service) InvalidateRole(ctx context.Context, email string) {
	if s.roleCache == nil {
		return
	}

	err := s.roleCache.DeleteRole(ctx, normalizeEmail(email))
	if err != nil {
		slog.WarnContext(ctx, "role cache invalidation failed", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func authorize(session entity.Session, module entity.Module, action entity.Action) error {
	if !session.IsReady() {
		return entity.ErrUnauthorized
	}

	if !session.HasPermission(module, action) {
		return fmt.Errorf("%w: %s.%s", entity.ErrPermissionDenied, module, action)
	}

	return nil
}
