package service

import (
	"context"
	"fmt"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func (s *Service) Dashboard(ctx context.Context, session entity.Session) (entity.Dashboard, error) {
	err := authorize(session, entity.ModuleDashboard, entity.ActionRead)
	if err != nil {
		return entity.Dashboard{}, err
	}

	counts, err := s.tickets.TicketCounts(ctx)
	if err != nil {
		return entity.Dashboard{}, fmt.Errorf("count tickets: %w", err)
	}

	employees, err := s.employees.CountEmployees(ctx)
	if err != nil {
		return entity.Dashboard{}, fmt.Errorf("count employees: %w", err)
	}

	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return entity.Dashboard{}, fmt.Errorf("count users: %w", err)
	}

	return entity.NewDashboard(counts, employees, users), nil
}
