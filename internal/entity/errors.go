package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized                = errors.New("unauthorized")
	ErrPermissionDenied            = errors.New("permission denied")
	ErrNotFound                    = errors.New("not found")
	ErrTicketNotFound              = fmt.Errorf("ticket %w", ErrNotFound)
	ErrEmployeeNotFound            = fmt.Errorf("employee %w", ErrNotFound)
	ErrUserNotFound                = fmt.Errorf("user %w", ErrNotFound)
	ErrTicketClosed                = errors.New("ticket is closed")
	ErrStoreNotProvisioned         = errors.New("store is not provisioned")
	ErrValidation                  = errors.New("validation failed")
	ErrUnknownModule               = errors.New("unknown module")
	ErrUnknownAction               = errors.New("unknown action")
	ErrInvalidRole                 = errors.New("invalid role")
	ErrInvalidStatus               = errors.New("invalid ticket status")
	ErrInvalidPriority             = errors.New("invalid ticket priority")
	ErrInvalidCommentType          = errors.New("invalid comment type")
	ErrIdentityProviderUnavailable = errors.New("identity provider unavailable")
	ErrInvalidSessionTransition    = errors.New("invalid session transition")
	ErrEmptyMessage                = errors.New("message is empty")
)

const (
	ErrMsgInternal          = "Internal server error"
	ErrMsgBadRequest        = "Bad request"
	ErrMsgValidation        = "Validation error"
	ErrMsgUnauthorized      = "Authentication required"
	ErrMsgPermissionDenied  = "You do not have permission to perform this action"
	ErrMsgNotFound          = "Not found"
	ErrMsgTicketClosed      = "Ticket is closed, new comments are not accepted"
	ErrMsgStoreProvisioning = "Ticket comments table is missing, apply the database migrations"
	ErrMsgEmptyMessage      = "Message is required"
)
