package entity

import "context"

type (
	CtxKeySession struct{}
	CtxKeyIP      struct{}
)

// SessionFromContext returns the ready session attached by the auth middleware.
func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(CtxKeySession{}).(Session)
	if !ok || !s.IsReady() {
		return Session{}, ErrUnauthorized
	}

	return s, nil
}

func SetSessionToContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, CtxKeySession{}, s)
}
