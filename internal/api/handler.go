package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
)

// @title Helpdesk API
// @version 1.0
// @description Equipment helpdesk: role permissions, tickets, comments and the AI assistant
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/api.go -package=mocks

type Service interface {
	Authenticate(ctx context.Context, token string) (entity.Session, error)
	RefreshSession(ctx context.Context, session entity.Session) (entity.Session, error)

	CreateTicket(ctx context.Context, session entity.Session, n entity.NewTicket) (entity.Ticket, error)
	GetTicket(ctx context.Context, session entity.Session, id uuid.UUID) (entity.Ticket, error)
	ListTickets(ctx context.Context, session entity.Session, filter entity.TicketFilter) ([]entity.Ticket, error)
	UpdateTicket(ctx context.Context, session entity.Session, id uuid.UUID, u entity.TicketUpdate) (entity.Ticket, error)
	DeleteTicket(ctx context.Context, session entity.Session, id uuid.UUID) error

	AddComment(ctx context.Context, session entity.Session, ticketID uuid.UUID, n entity.NewTicketComment) (entity.TicketComment, error)
	TicketComments(ctx context.Context, session entity.Session, ticketID uuid.UUID, showInternal *bool) ([]entity.TicketComment, error)
	CommentsSummary(ctx context.Context, session entity.Session, ticketID uuid.UUID) (entity.CommentsSummary, error)
	CommentsReadiness(ctx context.Context) error

	ListUsers(ctx context.Context, session entity.Session) ([]entity.UserRecord, error)
	UpdateUserRole(ctx context.Context, session entity.Session, userID uuid.UUID, role entity.Role) (entity.UserRecord, error)
	ListEmployees(ctx context.Context, session entity.Session) ([]entity.Employee, error)
	Dashboard(ctx context.Context, session entity.Session) (entity.Dashboard, error)

	Chat(ctx context.Context, session entity.Session, req entity.ChatRequest) (entity.ChatResponse, error)
}

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s: s}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	SendJSON(r.Context(), w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness godoc
// @Summary Readiness check
// @Description Fails with 503 until the ticket comments table exists
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ResponseError
// @Router /readiness [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	err := h.s.CommentsReadiness(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(r.Context(), w, http.StatusOK, HealthResponse{Status: "ready"})
}

type SessionResponse struct {
	State       entity.SessionState     `json:"state"`
	UserID      uuid.UUID               `json:"user_id"`
	Email       string                  `json:"email"`
	Role        entity.Role             `json:"role"`
	Permissions entity.PermissionMatrix `json:"permissions"`
	Modules     []entity.Module         `json:"modules"`
}

func newSessionResponse(s entity.Session) SessionResponse {
	return SessionResponse{
		State:       s.State(),
		UserID:      s.Identity().UserID,
		Email:       s.Identity().Email,
		Role:        s.Role(),
		Permissions: s.Matrix(),
		Modules:     s.Matrix().AccessibleModules(),
	}
}

// Session godoc
// @Summary Current session
// @Description Role and permission matrix of the caller
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ResponseError
// @Router /session [get]
// @Security BearerAuth
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := entity.SessionFromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(r.Context(), w, http.StatusOK, newSessionResponse(session))
}

// RefreshSession godoc
// @Summary Refresh session
// @Description Drops the cached role and resolves it again
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ResponseError
// @Router /session/refresh [post]
// @Security BearerAuth
func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	refreshed, err := h.s.RefreshSession(ctx, session)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, newSessionResponse(refreshed))
}

// Permissions godoc
// @Summary Permission matrix
// @Tags session
// @Produce json
// @Success 200 {object} entity.PermissionMatrix
// @Failure 401 {object} ResponseError
// @Router /permissions [get]
// @Security BearerAuth
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	session, err := entity.SessionFromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(r.Context(), w, http.StatusOK, session.Matrix())
}

type PermissionCheckResponse struct {
	Module  entity.Module `json:"module"`
	Action  entity.Action `json:"action,omitempty"`
	Allowed bool          `json:"allowed"`
}

// CheckPermission godoc
// @Summary Check a permission
// @Description Without action the answer is true when any action of the module is granted
// @Tags session
// @Produce json
// @Param module query string true "Module name"
// @Param action query string false "Action name"
// @Success 200 {object} PermissionCheckResponse
// @Failure 400 {object} ResponseError "Unknown module or action"
// @Failure 401 {object} ResponseError
// @Router /permissions/check [get]
// @Security BearerAuth
func (h *Handler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	session, err := entity.SessionFromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	module, err := entity.ParseModule(r.URL.Query().Get("module"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	action, err := entity.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(r.Context(), w, http.StatusOK, PermissionCheckResponse{
		Module:  module,
		Action:  action,
		Allowed: session.HasPermission(module, action),
	})
}

// ListTickets godoc
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Param status query string false "open, in_progress, closed or cancelled"
// @Param priority query string false "low, medium or high"
// @Param assigned_to query string false "Employee ID"
// @Param limit query int false "Page size, 50 by default"
// @Param offset query int false "Offset"
// @Success 200 {array} entity.Ticket
// @Failure 400 {object} ResponseError
// @Failure 403 {object} ResponseError
// @Router /tickets [get]
// @Security BearerAuth
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter, err := parseTicketFilter(r.URL.Query())
	if err != nil {
		handleError(w, r, err)
		return
	}

	tickets, err := h.s.ListTickets(ctx, session, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, tickets)
}

// CreateTicket godoc
// @Summary Create ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body entity.NewTicket true "Ticket"
// @Success 201 {object} entity.Ticket
// @Failure 400 {object} ResponseError
// @Failure 403 {object} ResponseError
// @Router /tickets [post]
// @Security BearerAuth
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req entity.NewTicket

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	ticket, err := h.s.CreateTicket(ctx, session, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, ticket)
}

// GetTicket godoc
// @Summary Get ticket
// @Tags tickets
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Success 200 {object} entity.Ticket
// @Failure 403 {object} ResponseError
// @Failure 404 {object} ResponseError
// @Router /tickets/{ticketID} [get]
// @Security BearerAuth
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	ticket, err := h.s.GetTicket(ctx, session, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, ticket)
}

// UpdateTicket godoc
// @Summary Update ticket
// @Description Status and assignment changes need tickets.update, the creator may edit the content
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Param request body entity.TicketUpdate true "Changed fields"
// @Success 200 {object} entity.Ticket
// @Failure 400 {object} ResponseError
// @Failure 403 {object} ResponseError
// @Failure 404 {object} ResponseError
// @Router /tickets/{ticketID} [put]
// @Security BearerAuth
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req entity.TicketUpdate

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	ticket, err := h.s.UpdateTicket(ctx, session, id, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, ticket)
}

// DeleteTicket godoc
// @Summary Delete ticket
// @Tags tickets
// @Param ticketID path string true "Ticket ID"
// @Success 204
// @Failure 403 {object} ResponseError
// @Failure 404 {object} ResponseError
// @Router /tickets/{ticketID} [delete]
// @Security BearerAuth
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = h.s.DeleteTicket(ctx, session, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TicketComments godoc
// @Summary List ticket comments
// @Description Internal comments are returned only to roles that may view them
// @Tags comments
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Param show_internal query bool false "Hide internal comments when false"
// @Success 200 {array} entity.TicketComment
// @Failure 403 {object} ResponseError
// @Failure 503 {object} ResponseError "Comments table is missing"
// @Router /tickets/{ticketID}/comments [get]
// @Security BearerAuth
func (h *Handler) TicketComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	showInternal, err := parseOptionalBool(r.URL.Query(), "show_internal")
	if err != nil {
		handleError(w, r, err)
		return
	}

	comments, err := h.s.TicketComments(ctx, session, id, showInternal)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, comments)
}

// AddComment godoc
// @Summary Add comment
// @Tags comments
// @Accept json
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Param request body entity.NewTicketComment true "Comment"
// @Success 201 {object} entity.TicketComment
// @Failure 400 {object} ResponseError
// @Failure 403 {object} ResponseError
// @Failure 404 {object} ResponseError
// @Failure 409 {object} ResponseError "Ticket is closed"
// @Failure 503 {object} ResponseError "Comments table is missing"
// @Router /tickets/{ticketID}/comments [post]
// @Security BearerAuth
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req entity.NewTicketComment

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	comment, err := h.s.AddComment(ctx, session, id, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusCreated, comment)
}

// CommentsSummary godoc
// @Summary Comments summary
// @Tags comments
// @Produce json
// @Param ticketID path string true "Ticket ID"
// @Success 200 {object} entity.CommentsSummary
// @Failure 403 {object} ResponseError
// @Router /tickets/{ticketID}/comments/summary [get]
// @Security BearerAuth
func (h *Handler) CommentsSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "ticketID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := h.s.CommentsSummary(ctx, session, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, summary)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} entity.UserRecord
// @Failure 403 {object} ResponseError
// @Router /users [get]
// @Security BearerAuth
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	users, err := h.s.ListUsers(ctx, session)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, users)
}

type UpdateUserRoleRequest struct {
	Role entity.Role `json:"role"`
}

// UpdateUserRole godoc
// @Summary Change user role
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body UpdateUserRoleRequest true "New role"
// @Success 200 {object} entity.UserRecord
// @Failure 400 {object} ResponseError
// @Failure 403 {object} ResponseError
// @Failure 404 {object} ResponseError
// @Router /users/{userID}/role [put]
// @Security BearerAuth
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, err := parseUUIDParam(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req UpdateUserRoleRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	user, err := h.s.UpdateUserRole(ctx, session, id, req.Role)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, user)
}

// ListEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} entity.Employee
// @Failure 403 {object} ResponseError
// @Router /employees [get]
// @Security BearerAuth
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	employees, err := h.s.ListEmployees(ctx, session)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, employees)
}

// Dashboard godoc
// @Summary Ticket, employee and user totals
// @Tags dashboard
// @Produce json
// @Success 200 {object} entity.Dashboard
// @Failure 403 {object} ResponseError
// @Router /dashboard [get]
// @Security BearerAuth
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	dashboard, err := h.s.Dashboard(ctx, session)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, dashboard)
}

// Chat godoc
// @Summary Ask the AI assistant
// @Description Upstream failures are answered with 200, a readable message and an error code
// @Tags ai
// @Accept json
// @Produce json
// @Param request body entity.ChatRequest true "Question"
// @Success 200 {object} entity.ChatResponse
// @Failure 400 {object} ResponseError "Empty message"
// @Failure 403 {object} ResponseError
// @Router /ai/chat [post]
// @Security BearerAuth
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := entity.SessionFromContext(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req entity.ChatRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
		return
	}

	resp, err := h.s.Chat(ctx, session, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}
