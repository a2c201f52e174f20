package entity_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

func testComments(base time.Time) []entity.TicketComment {
	ticketID := uuid.Must(uuid.NewV4())

	// out of order on purpose, 2 of 5 internal
	return []entity.TicketComment{
		{ID: uuid.Must(uuid.NewV4()), TicketID: ticketID, Comment: "c3", CreatedAt: base.Add(3 * time.Minute)},
		{ID: uuid.Must(uuid.NewV4()), TicketID: ticketID, Comment: "c1", CreatedAt: base.Add(time.Minute), IsInternal: true},
		{ID: uuid.Must(uuid.NewV4()), TicketID: ticketID, Comment: "c5", CreatedAt: base.Add(5 * time.Minute), IsInternal: true},
		{ID: uuid.Must(uuid.NewV4()), TicketID: ticketID, Comment: "c2", CreatedAt: base.Add(2 * time.Minute)},
		{ID: uuid.Must(uuid.NewV4()), TicketID: ticketID, Comment: "c4", CreatedAt: base.Add(4 * time.Minute)},
	}
}

func commentTexts(comments []entity.TicketComment) []string {
	texts := make([]string, 0, len(comments))
	for _, c := range comments {
		texts = append(texts, c.Comment)
	}

	return texts
}

func TestVisibleComments(t *testing.T) {
	t.Parallel()

	comments := testComments(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	for _, tt := range []struct {
		name            string
		canViewInternal bool
		showInternal    bool
		want            []string
	}{
		{name: "no capability", want: []string{"c2", "c3", "c4"}},
		{name: "no capability ignores toggle", showInternal: true, want: []string{"c2", "c3", "c4"}},
		{name: "capability shown", canViewInternal: true, showInternal: true, want: []string{"c1", "c2", "c3", "c4", "c5"}},
		{name: "capability hidden", canViewInternal: true, want: []string{"c2", "c3", "c4"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := entity.VisibleComments(comments, tt.canViewInternal, tt.showInternal)
			require.Equal(t, tt.want, commentTexts(got))

			for i := 1; i < len(got); i++ {
				require.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt))
			}
		})
	}

	require.Equal(t, "c3", comments[0].Comment, "input is not reordered")
}

func TestVisibleComments_StableOnEqualTimestamps(t *testing.T) {
	t.Parallel()

	at := time.Now()
	comments := []entity.TicketComment{
		{Comment: "first", CreatedAt: at},
		{Comment: "second", CreatedAt: at},
		{Comment: "third", CreatedAt: at},
	}

	got := entity.VisibleComments(comments, false, false)
	require.Equal(t, []string{"first", "second", "third"}, commentTexts(got))
}

func TestCanAddComment(t *testing.T) {
	t.Parallel()

	require.True(t, entity.CanAddComment(entity.Ticket{Status: entity.TicketStatusOpen}))
	require.True(t, entity.CanAddComment(entity.Ticket{Status: entity.TicketStatusInProgress}))
	require.True(t, entity.CanAddComment(entity.Ticket{Status: entity.TicketStatusCancelled}))
	require.False(t, entity.CanAddComment(entity.Ticket{Status: entity.TicketStatusClosed}))
}

func TestNewTicketComment_Validate(t *testing.T) {
	t.Parallel()

	c := entity.NewTicketComment{Comment: "  replaced cable "}
	require.NoError(t, c.Validate())
	require.Equal(t, "replaced cable", c.Comment)
	require.Equal(t, entity.CommentTypeComment, c.CommentType)

	require.ErrorIs(t, (&entity.NewTicketComment{Comment: "   "}).Validate(), entity.ErrValidation)
	require.ErrorIs(t, (&entity.NewTicketComment{Comment: "x", CommentType: "note"}).Validate(), entity.ErrInvalidCommentType)
}

func TestSummarizeComments(t *testing.T) {
	t.Parallel()

	ticketID := uuid.Must(uuid.NewV4())

	empty := entity.SummarizeComments(ticketID, nil)
	require.Zero(t, empty.Total)
	require.Nil(t, empty.LastComment)

	visible := entity.VisibleComments(testComments(time.Now()), false, false)
	visible[len(visible)-1].AuthorName = "Ana"

	summary := entity.SummarizeComments(ticketID, visible)
	require.Equal(t, 3, summary.Total)
	require.NotNil(t, summary.LastComment)
	require.Equal(t, "Ana", summary.LastComment.AuthorName)
	require.False(t, summary.LastComment.IsInternal)
}
