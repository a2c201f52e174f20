package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/helpdesk/internal/api"
	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/internal/mocks"
)

const (
	token         = "dev"
	trustedOrigin = "https://helpdesk.example.com"
)

type testAPI struct {
	srv *httptest.Server
	s   *mocks.MockService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	s := mocks.NewMockService(ctrl)

	srv := httptest.NewServer(api.NewRouter(api.NewHandler(s), api.NewMiddleware(s, []string{trustedOrigin})))
	t.Cleanup(srv.Close)

	return &testAPI{srv: srv, s: s}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, a.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (a *testAPI) signIn(t *testing.T, role entity.Role) entity.Session {
	t.Helper()

	resolving, err := entity.Session{}.SignIn(entity.Identity{
		UserID: uuid.Must(uuid.NewV4()),
		Email:  string(role) + "@example.com",
	})
	require.NoError(t, err)

	session, err := resolving.Resolve(role)
	require.NoError(t, err)

	a.s.EXPECT().Authenticate(gomock.Any(), token).Return(session, nil)

	return session
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func TestHandler_Health(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[api.HealthResponse](t, resp).Status)
}

func TestHandler_Readiness(t *testing.T) {
	a := newTestAPI(t)

	a.s.EXPECT().CommentsReadiness(gomock.Any()).Return(entity.ErrStoreNotProvisioned)

	resp := a.do(t, http.MethodGet, "/api/readiness", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, entity.ErrMsgStoreProvisioning, decode[api.ResponseError](t, resp).Message)
}

func TestHandler_Auth(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		a := newTestAPI(t)

		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, a.srv.URL+"/api/session", nil)
		require.NoError(t, err)

		resp, err := a.srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		a := newTestAPI(t)

		a.s.EXPECT().Authenticate(gomock.Any(), token).Return(entity.Session{}, entity.ErrUnauthorized)

		resp := a.do(t, http.MethodGet, "/api/session", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("identity provider unavailable", func(t *testing.T) {
		a := newTestAPI(t)

		a.s.EXPECT().Authenticate(gomock.Any(), token).Return(entity.Session{}, entity.ErrIdentityProviderUnavailable)

		resp := a.do(t, http.MethodGet, "/api/session", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandler_Session(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleManager)

	resp := a.do(t, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[api.SessionResponse](t, resp)
	assert.Equal(t, entity.SessionReady, got.State)
	assert.Equal(t, entity.RoleManager, got.Role)
	assert.Equal(t, session.Identity().UserID, got.UserID)
	assert.True(t, got.Permissions.Tickets.ViewInternal)
	assert.False(t, got.Permissions.CanAccessAdminPanel)
	assert.Equal(t, session.Matrix().AccessibleModules(), got.Modules)
}

func TestHandler_RefreshSession(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	promoted, err := entity.Session{}.SignIn(session.Identity())
	require.NoError(t, err)
	promoted, err = promoted.Resolve(entity.RoleAdmin)
	require.NoError(t, err)

	a.s.EXPECT().RefreshSession(gomock.Any(), session).Return(promoted, nil)

	resp := a.do(t, http.MethodPost, "/api/session/refresh", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[api.SessionResponse](t, resp)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.True(t, got.Permissions.CanAccessAdminPanel)
}

func TestHandler_CheckPermission(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.Role
		query   string
		code    int
		allowed bool
	}{
		{name: "any action", role: entity.RoleUser, query: "module=tickets", code: http.StatusOK, allowed: true},
		{name: "user cannot delete", role: entity.RoleUser, query: "module=tickets&action=delete", code: http.StatusOK},
		{name: "manager views internal", role: entity.RoleManager, query: "module=tickets&action=viewInternal", code: http.StatusOK, allowed: true},
		{name: "admin panel", role: entity.RoleAdmin, query: "module=canAccessAdminPanel", code: http.StatusOK, allowed: true},
		{name: "unknown module", role: entity.RoleAdmin, query: "module=reports", code: http.StatusBadRequest},
		{name: "unknown action", role: entity.RoleAdmin, query: "module=tickets&action=archive", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAPI(t)
			a.signIn(t, tt.role)

			resp := a.do(t, http.MethodGet, "/api/permissions/check?"+tt.query, "")
			require.Equal(t, tt.code, resp.StatusCode)

			if tt.code == http.StatusOK {
				assert.Equal(t, tt.allowed, decode[api.PermissionCheckResponse](t, resp).Allowed)
			}
		})
	}
}

func TestHandler_ListTickets(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	status := entity.TicketStatusOpen
	ticket := entity.Ticket{ID: uuid.Must(uuid.NewV4()), Title: "Impresora", Status: status}

	a.s.EXPECT().
		ListTickets(gomock.Any(), session, entity.TicketFilter{Status: &status, Limit: 10, Offset: 20}).
		Return([]entity.Ticket{ticket}, nil)

	resp := a.do(t, http.MethodGet, "/api/tickets?status=open&limit=10&offset=20", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[[]entity.Ticket](t, resp)
	require.Len(t, got, 1)
	assert.Equal(t, ticket.ID, got[0].ID)
}

func TestHandler_ListTickets_BadLimit(t *testing.T) {
	a := newTestAPI(t)
	a.signIn(t, entity.RoleUser)

	resp := a.do(t, http.MethodGet, "/api/tickets?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_CreateTicket(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	created := entity.Ticket{ID: uuid.Must(uuid.NewV4()), Title: "Monitor sin señal"}

	a.s.EXPECT().
		CreateTicket(gomock.Any(), session, entity.NewTicket{Title: "Monitor sin señal", Priority: entity.TicketPriorityHigh}).
		Return(created, nil)

	resp := a.do(t, http.MethodPost, "/api/tickets", `{"title":"Monitor sin señal","priority":"high"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, created.ID, decode[entity.Ticket](t, resp).ID)
}

func TestHandler_GetTicket(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		a := newTestAPI(t)
		session := a.signIn(t, entity.RoleUser)

		id := uuid.Must(uuid.NewV4())
		a.s.EXPECT().GetTicket(gomock.Any(), session, id).Return(entity.Ticket{}, entity.ErrTicketNotFound)

		resp := a.do(t, http.MethodGet, "/api/tickets/"+id.String(), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		a := newTestAPI(t)
		a.signIn(t, entity.RoleUser)

		resp := a.do(t, http.MethodGet, "/api/tickets/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_UpdateTicket_PermissionDenied(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	id := uuid.Must(uuid.NewV4())
	closed := entity.TicketStatusClosed

	a.s.EXPECT().
		UpdateTicket(gomock.Any(), session, id, entity.TicketUpdate{Status: &closed}).
		Return(entity.Ticket{}, entity.ErrPermissionDenied)

	resp := a.do(t, http.MethodPut, "/api/tickets/"+id.String(), `{"status":"closed"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, entity.ErrMsgPermissionDenied, decode[api.ResponseError](t, resp).Message)
}

func TestHandler_DeleteTicket(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleAdmin)

	id := uuid.Must(uuid.NewV4())
	a.s.EXPECT().DeleteTicket(gomock.Any(), session, id).Return(nil)

	resp := a.do(t, http.MethodDelete, "/api/tickets/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHandler_TicketComments(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleManager)

	id := uuid.Must(uuid.NewV4())
	hide := false

	a.s.EXPECT().
		TicketComments(gomock.Any(), session, id, &hide).
		Return([]entity.TicketComment{{ID: uuid.Must(uuid.NewV4()), TicketID: id, Comment: "Revisado"}}, nil)

	resp := a.do(t, http.MethodGet, "/api/tickets/"+id.String()+"/comments?show_internal=false", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]entity.TicketComment](t, resp), 1)
}

func TestHandler_TicketComments_NotProvisioned(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	id := uuid.Must(uuid.NewV4())

	a.s.EXPECT().TicketComments(gomock.Any(), session, id, nil).Return(nil, entity.ErrStoreNotProvisioned)

	resp := a.do(t, http.MethodGet, "/api/tickets/"+id.String()+"/comments", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, entity.ErrMsgStoreProvisioning, decode[api.ResponseError](t, resp).Message)
}

func TestHandler_AddComment_Closed(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleAdmin)

	id := uuid.Must(uuid.NewV4())

	a.s.EXPECT().
		AddComment(gomock.Any(), session, id, entity.NewTicketComment{Comment: "hola"}).
		Return(entity.TicketComment{}, entity.ErrTicketClosed)

	resp := a.do(t, http.MethodPost, "/api/tickets/"+id.String()+"/comments", `{"comment":"hola"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, entity.ErrMsgTicketClosed, decode[api.ResponseError](t, resp).Message)
}

func TestHandler_CommentsSummary(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	id := uuid.Must(uuid.NewV4())

	a.s.EXPECT().CommentsSummary(gomock.Any(), session, id).Return(entity.CommentsSummary{TicketID: id, Total: 3}, nil)

	resp := a.do(t, http.MethodGet, "/api/tickets/"+id.String()+"/comments/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decode[entity.CommentsSummary](t, resp).Total)
}

func TestHandler_Users_ModuleGate(t *testing.T) {
	a := newTestAPI(t)
	a.signIn(t, entity.RoleUser)

	resp := a.do(t, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandler_UpdateUserRole(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleAdmin)

	id := uuid.Must(uuid.NewV4())

	a.s.EXPECT().
		UpdateUserRole(gomock.Any(), session, id, entity.RoleManager).
		Return(entity.UserRecord{ID: id, Role: entity.RoleManager}, nil)

	resp := a.do(t, http.MethodPut, "/api/users/"+id.String()+"/role", `{"role":"manager"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleManager, decode[entity.UserRecord](t, resp).Role)
}

func TestHandler_ListEmployees(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleManager)

	a.s.EXPECT().ListEmployees(gomock.Any(), session).Return([]entity.Employee{{Name: "Ana"}}, nil)

	resp := a.do(t, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]entity.Employee](t, resp), 1)
}

func TestHandler_Dashboard(t *testing.T) {
	a := newTestAPI(t)
	session := a.signIn(t, entity.RoleUser)

	a.s.EXPECT().Dashboard(gomock.Any(), session).Return(entity.NewDashboard([]entity.TicketCount{
		{Status: entity.TicketStatusOpen, Priority: entity.TicketPriorityHigh, Count: 2},
	}, 4, 9), nil)

	resp := a.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[entity.Dashboard](t, resp)
	assert.Equal(t, 2, got.OpenTickets)
	assert.Equal(t, 2, got.TicketsByPriority[entity.TicketPriorityHigh])
	assert.Equal(t, 0, got.TicketsByStatus[entity.TicketStatusClosed])
	assert.Equal(t, 9, got.TotalUsers)
}

func TestHandler_Chat(t *testing.T) {
	t.Run("answer", func(t *testing.T) {
		a := newTestAPI(t)
		session := a.signIn(t, entity.RoleUser)

		a.s.EXPECT().
			Chat(gomock.Any(), session, entity.ChatRequest{Message: "¿Qué es un SSD?"}).
			Return(entity.ChatResponse{Response: "Una unidad de estado sólido."}, nil)

		resp := a.do(t, http.MethodPost, "/api/ai/chat", `{"message":"¿Qué es un SSD?"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Una unidad de estado sólido.", decode[entity.ChatResponse](t, resp).Response)
	})

	t.Run("upstream failure", func(t *testing.T) {
		a := newTestAPI(t)
		session := a.signIn(t, entity.RoleUser)

		a.s.EXPECT().
			Chat(gomock.Any(), session, gomock.Any()).
			Return(entity.ChatResponse{Response: "límite", Error: entity.ChatErrRateLimit}, nil)

		resp := a.do(t, http.MethodPost, "/api/ai/chat", `{"message":"hola"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.ChatErrRateLimit, decode[entity.ChatResponse](t, resp).Error)
	})

	t.Run("empty message", func(t *testing.T) {
		a := newTestAPI(t)
		session := a.signIn(t, entity.RoleUser)

		a.s.EXPECT().Chat(gomock.Any(), session, gomock.Any()).Return(entity.ChatResponse{}, entity.ErrEmptyMessage)

		resp := a.do(t, http.MethodPost, "/api/ai/chat", `{"message":"  "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_Metrics(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Cors(t *testing.T) {
	a := newTestAPI(t)

	preflight := func(t *testing.T, origin string) *http.Response {
		t.Helper()

		req, err := http.NewRequestWithContext(context.Background(), http.MethodOptions, a.srv.URL+"/api/tickets", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)

		resp, err := a.srv.Client().Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })

		return resp
	}

	t.Run("allowed origin gets credentials", func(t *testing.T) {
		resp := preflight(t, trustedOrigin)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, trustedOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin is not echoed", func(t *testing.T) {
		resp := preflight(t, "https://evil.example.net")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
	})
}
