package entity

// TicketCount is one row of the tickets table grouped by status and priority.
type TicketCount struct {
	Status   TicketStatus
	Priority TicketPriority
	Count    int
}

type Dashboard struct {
	TotalTickets      int                    `json:"total_tickets"`
	OpenTickets       int                    `json:"open_tickets"`
	TicketsByStatus   map[TicketStatus]int   `json:"tickets_by_status"`
	TicketsByPriority map[TicketPriority]int `json:"tickets_by_priority"`
	TotalEmployees    int                    `json:"total_employees"`
	TotalUsers        int                    `json:"total_users"`
}

// NewDashboard folds grouped ticket counts into per-status and per-priority
// totals. Every known status and priority is present, zero when unused.
func NewDashboard(counts []TicketCount, employees, users int) Dashboard {
	d := Dashboard{
		TicketsByStatus: map[TicketStatus]int{
			TicketStatusOpen:       0,
			TicketStatusInProgress: 0,
			TicketStatusClosed:     0,
			TicketStatusCancelled:  0,
		},
		TicketsByPriority: map[TicketPriority]int{
			TicketPriorityLow:    0,
			TicketPriorityMedium: 0,
			TicketPriorityHigh:   0,
		},
		TotalEmployees: employees,
		TotalUsers:     users,
	}

	for _, c := range counts {
		d.TotalTickets += c.Count
		d.TicketsByStatus[c.Status] += c.Count
		d.TicketsByPriority[c.Priority] += c.Count
	}

	d.OpenTickets = d.TicketsByStatus[TicketStatusOpen]

	return d
}
