package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"history/internal/domain/session"
)

type Auth struct {
	api     huma.API
	session session.Servicer
	log     *slog.Logger
}

func New(api huma.API, session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const ownerKey contextKey = "owner"

// Middleware rejects requests without a valid bearer token and puts the
// token's owner into the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx, "bearer token is required")
			return
		}

		owner, err := a.session.Validate(ctx.Context(), strings.TrimSpace(token))
		if err != nil {
			a.log.Debug("token validation failed", "path", ctx.URL().Path, "error", err)
			a.unauthorized(ctx, "invalid token")
			return
		}

		next(huma.WithContext(ctx, WithOwner(ctx.Context(), owner)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, msg string) {
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, msg); err != nil {
		a.log.Error("failed to write error response", "error", err)
	}
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner returns the authenticated user id.
func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok && owner != ""
}
