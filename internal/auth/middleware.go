// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/logging"
)

// Auth modes.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext returns the authenticated claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Authorizer decides whether subject, holding role, may perform action on
// owner's data.
type Authorizer interface {
	Authorize(subject, role, owner, action string) (bool, error)
}

// Access actions passed to an Authorizer.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// ActionFor maps an HTTP method to an access action.
func ActionFor(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	default:
		return ActionWrite
	}
}

// Middleware enforces the configured auth mode.
type Middleware struct {
	mode  string
	jwt   *JWTManager
	authz Authorizer
}

// NewMiddleware creates the middleware. jwtManager may be nil in mode none.
func NewMiddleware(mode string, jwtManager *JWTManager) *Middleware {
	return &Middleware{mode: mode, jwt: jwtManager}
}

// WithAuthorizer makes RequireUser consult a. Without one, RequireUser
// admits the owner and admins.
func (m *Middleware) WithAuthorizer(a Authorizer) *Middleware {
	m.authz = a
	return m
}

// Authenticate validates the bearer token and stores the claims and
// username in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode == ModeNone {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "bearer token required")
			return
		}

		claims, err := m.jwt.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("token rejected")
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = logging.ContextWithUsername(ctx, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser guards routes carrying a username parameter. Mode none admits
// everyone.
func (m *Middleware) RequireUser(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.mode == ModeNone {
				next.ServeHTTP(w, r)
				return
			}
			if ClaimsFromContext(r.Context()) == nil {
				writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}
			allowed, err := m.Authorize(r, chi.URLParam(r, param))
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("authorization check failed")
				writeAuthError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed")
				return
			}
			if !allowed {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "access to another user's data is not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authorize reports whether the authenticated caller of r may act on
// owner's data, using the request method as the action. Mode none allows
// everything; a request without claims is denied.
func (m *Middleware) Authorize(r *http.Request, owner string) (bool, error) {
	if m.mode == ModeNone {
		return true, nil
	}
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		return false, nil
	}
	return m.allowed(claims, owner, ActionFor(r.Method))
}

func (m *Middleware) allowed(claims *Claims, owner, action string) (bool, error) {
	if m.authz != nil {
		return m.authz.Authorize(claims.Username, claims.Role, owner, action)
	}
	return claims.IsAdmin() || claims.Username == owner, nil
}

type authErrorBody struct {
	Status string `json:"status"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	var body authErrorBody
	body.Status = "error"
	body.Error.Code = code
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="barkeep"`)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
