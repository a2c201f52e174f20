package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5/request"

	"github.com/samandr77/microservices/helpdesk/internal/entity"
	"github.com/samandr77/microservices/helpdesk/pkg/logger"
	"github.com/samandr77/microservices/helpdesk/pkg/metrics"
)

type AuthService interface {
	Authenticate(ctx context.Context, token string) (entity.Session, error)
}

type Middleware struct {
	auth           AuthService
	allowedOrigins map[string]struct{}
}

// NewMiddleware builds the middleware set. Only allowedOrigins get their
// Origin echoed with credentials; any other caller gets a wildcard origin.
func NewMiddleware(auth AuthService, allowedOrigins []string) *Middleware {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}

	return &Middleware{auth: auth, allowedOrigins: origins}
}

func (m *Middleware) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := m.allowedOrigins[origin]; ok && origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Origin, Accept, User-Agent, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.SetRequestID(r.Context(), uuid.Must(uuid.NewV4()).String())

		ctx = logger.SetURL(ctx, r.URL.Path)
		ctx = logger.SetMethod(ctx, r.Method)
		ctx = logger.SetLogType(ctx, "webrequest")

		slog.InfoContext(ctx, "incoming request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(ctx context.Context) {
			err := recover()
			if err != nil {
				slog.ErrorContext(ctx, "panic", "error", err, "stack", string(debug.Stack()))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}(r.Context())
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) WithIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ip string

		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ips := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(ips[0])
		}

		if ip == "" {
			if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
				ip = strings.TrimSpace(realIP)
			}
		}

		if ip == "" {
			var err error

			ip, _, err = net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
		}

		ctx := context.WithValue(r.Context(), entity.CtxKeyIP{}, ip)
		ctx = logger.SetIP(ctx, ip)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Metrics records request counts and latency per chi route pattern.
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := routePattern(r)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Auth verifies the bearer token and attaches the ready session to the
// request context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.SetLogType(r.Context(), "auth")

		token, err := request.BearerExtractor{}.ExtractToken(r)
		if err != nil {
			slog.WarnContext(ctx, "auth: bearer token extract failed")
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)

			return
		}

		session, err := m.auth.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, entity.ErrIdentityProviderUnavailable) {
				SendJSONErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
			} else {
				SendJSONErr(ctx, w, http.StatusUnauthorized, err, entity.ErrMsgUnauthorized)
			}

			return
		}

		ctx = logger.SetUserID(ctx, session.Identity().UserID.String())
		ctx = logger.SetRole(ctx, string(session.Role()))
		ctx = entity.SetSessionToContext(ctx, session)

		ctx = logger.SetLogType(ctx, "webrequest")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireModule rejects sessions that cannot open module.
func (m *Middleware) RequireModule(module entity.Module) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := entity.SessionFromContext(r.Context())
			if err != nil {
				handleError(w, r, err)
				return
			}

			if !session.CanAccessModule(module) {
				handleError(w, r, fmt.Errorf("%w: module %s", entity.ErrPermissionDenied, module))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
