package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func TestNewDashboard(t *testing.T) {
	t.Parallel()

	d := entity.NewDashboard([]entity.TicketCount{
		{Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityHigh, Count: 2},
		{Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityLow, Count: 1},
		{Status: entity.TicketStatusClosed, Priority: entity.TicketPriorityHigh, Count: 4},
	}, 7, 3)

	require.Equal(t, 7, d.TotalTickets)
	require.Equal(t, 3, d.OpenTickets)
	require.Equal(t, 4, d.TicketsByStatus[entity.TicketStatusClosed])
	require.Equal(t, 6, d.TicketsByPriority[entity.TicketPriorityHigh])
	require.Equal(t, 7, d.TotalEmployees)
	require.Equal(t, 3, d.TotalUsers)

	empty := entity.NewDashboard(nil, 0, 0)
	require.Len(t, empty.TicketsByStatus, 4)
	require.Len(t, empty.TicketsByPriority, 3)
	require.Zero(t, empty.TicketsByStatus[entity.TicketStatusCancelled])
}
