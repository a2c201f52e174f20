package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func (s *Service) ListUsers(ctx context.Context, session entity.Session) ([]entity.UserRecord, error) {
	err := authorize(session, entity.ModuleUsers, entity.ActionRead)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// UpdateUserRole assigns a role and drops the cached role of that user so the
// next request rebuilds its matrix.
func (s *Service) UpdateUserRole(
	ctx context.Context,
	session entity.Session,
	userID uuid.UUID,
	role entity.Role,
) (entity.UserRecord, error) {
	err := authorize(session, entity.ModuleUsers, entity.ActionUpdate)
	if err != nil {
		return entity.UserRecord{}, err
	}

	if !role.IsValid() {
		return entity.UserRecord{}, fmt.Errorf("%w: %q", entity.ErrInvalidRole, role)
	}

	user, err := s.users.UpdateUserRole(ctx, userID, role, s.now())
	if err != nil {
		return entity.UserRecord{}, fmt.Errorf("update user role: %w", err)
	}

	s.InvalidateRole(ctx, user.Email)

	slog.InfoContext(ctx, "user role changed", "target_user_id", userID, "role", role)

	return user, nil
}

func (s *Service) ListEmployees(ctx context.Context, session entity.Session) ([]entity.Employee, error) {
	err := authorize(session, entity.ModuleEmployees, entity.ActionRead)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}
