package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/metrics"
)

type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "api error", "error", originErr.Error())
	} else {
		slog.WarnContext(ctx, "api error", "error", originErr.Error())
	}

	SendJSON(ctx, w, code, ResponseError{Message: msgToSend, Error: originErr.Error()})
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// handleError maps service errors onto HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)
	case errors.Is(err, entity.ErrPermissionDenied):
		metrics.PermissionDenied.WithLabelValues(routePattern(r)).Inc()
		SendJSONErr(ctx, w, http.StatusForbidden, err, entity.ErrMsgPermissionDenied)
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, entity.ErrMsgNotFound)
	case errors.Is(err, entity.ErrTicketClosed):
		SendJSONErr(ctx, w, http.StatusConflict, err, entity.ErrMsgTicketClosed)
	case errors.Is(err, entity.ErrStoreNotProvisioned):
		SendJSONErr(ctx, w, http.StatusServiceUnavailable, err, entity.ErrMsgStoreProvisioning)
	case errors.Is(err, entity.ErrEmptyMessage):
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgEmptyMessage)
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, entity.ErrInvalidPriority),
		errors.Is(err, entity.ErrInvalidCommentType),
		errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrUnknownModule),
		errors.Is(err, entity.ErrUnknownAction):
		SendJSONErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgValidation)
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
	}
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		return "unmatched"
	}

	return rctx.RoutePattern()
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.Join(entity.ErrValidation, err)
	}

	return id, nil
}

func parseTicketFilter(q url.Values) (entity.TicketFilter, error) {
	var filter entity.TicketFilter

	if v := q.Get("status"); v != "" {
		status := entity.TicketStatus(v)
		filter.Status = &status
	}

	if v := q.Get("priority"); v != "" {
		priority := entity.TicketPriority(v)
		filter.Priority = &priority
	}

	if v := q.Get("assigned_to"); v != "" {
		id, err := uuid.FromString(v)
		if err != nil {
			return filter, errors.Join(entity.ErrValidation, err)
		}

		filter.AssignedTo = &id
	}

	var err error

	filter.Limit, err = parseUintParam(q, "limit")
	if err != nil {
		return filter, err
	}

	filter.Offset, err = parseUintParam(q, "offset")
	if err != nil {
		return filter, err
	}

	return filter, nil
}

func parseUintParam(q url.Values, name string) (uint64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.Join(entity.ErrValidation, err)
	}

	return n, nil
}

// parseOptionalBool returns nil for an absent parameter.
func parseOptionalBool(q url.Values, name string) (*bool, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil //nolint:nilnil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.Join(entity.ErrValidation, err)
	}

	return &b, nil
}
