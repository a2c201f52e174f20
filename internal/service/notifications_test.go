package service_test

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func TestService_HandleTicketEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	creator := entity.Employee{ID: uuid.Must(uuid.NewV4()), Name: "Ana", Email: "ana@example.com"}

	t.Run("closed ticket emails creator", func(t *testing.T) {
		t.Parallel()

		ts := NewTestService(t)
		event := entity.TicketEvent{
			Type:      entity.TicketStatusChanged,
			TicketID:  uuid.Must(uuid.NewV4()),
			Title:     "VPN <drops>",
			Status:    entity.TicketStatusClosed,
			CreatedBy: creator.ID,
		}

		ts.employees.EXPECT().EmployeeByID(gomock.Any(), creator.ID).Return(creator, nil)
		ts.mailer.EXPECT().Send(gomock.Any(), "ana@example.com", "Ticket cerrado: VPN <drops>", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _, body string) error {
				require.Contains(t, body, "VPN &lt;drops&gt;")
				return nil
			})

		require.NoError(t, ts.s.HandleTicketEvent(ctx, event))
	})

	t.Run("other events are ignored", func(t *testing.T) {
		t.Parallel()

		ts := NewTestService(t)

		require.NoError(t, ts.s.HandleTicketEvent(ctx, entity.TicketEvent{
			Type: entity.TicketCommentAdded, Status: entity.TicketStatusClosed, IsInternal: true, Comment: "secret",
		}))
		require.NoError(t, ts.s.HandleTicketEvent(ctx, entity.TicketEvent{
			Type: entity.TicketStatusChanged, Status: entity.TicketStatusCancelled,
		}))
	})

	t.Run("missing creator is skipped", func(t *testing.T) {
		t.Parallel()

		ts := NewTestService(t)

		ts.employees.EXPECT().EmployeeByID(gomock.Any(), gomock.Any()).Return(entity.Employee{}, entity.ErrEmployeeNotFound)

		require.NoError(t, ts.s.HandleTicketEvent(ctx, entity.TicketEvent{
			Type: entity.TicketStatusChanged, Status: entity.TicketStatusClosed, CreatedBy: uuid.Must(uuid.NewV4()),
		}))
	})
}

func TestService_HandleIdentityEvent(t *testing.T) {
	t.Parallel()

	ts := NewTestService(t)
	ctx := context.Background()

	ts.cache.EXPECT().DeleteRole(gomock.Any(), "ana@example.com").Return(nil).Times(2)

	require.NoError(t, ts.s.HandleIdentityEvent(ctx, entity.IdentityEvent{Type: entity.IdentitySignedOut, Email: "Ana@example.com"}))
	require.NoError(t, ts.s.HandleIdentityEvent(ctx, entity.IdentityEvent{Type: entity.IdentityRoleChanged, Email: "ana@example.com"}))
	require.ErrorIs(t, ts.s.HandleIdentityEvent(ctx, entity.IdentityEvent{Type: "password_reset"}), entity.ErrValidation)
}
