package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/app/views"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type contextKey string

const identityKey contextKey = "identity"

// RequestIDMiddleware tags each request with a uuid, or keeps the caller's
// X-Request-ID. The id is stored where middleware.GetReqID finds it.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(middleware.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func LoggingMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := middleware.GetReqID(r.Context())
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), requestID, map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			next.ServeHTTP(ww, r)

			logger.Debug("http_response", "Request completed", requestID, map[string]interface{}{
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func RecoveryMiddleware(logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic_recovered", "Panic recovered", middleware.GetReqID(r.Context()),
						map[string]interface{}{"path": r.URL.Path}, fmt.Errorf("%v", rec))
					respondError(w, "Internal server error", http.StatusInternalServerError, nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware resolves the bearer token into an identity. Requests
// without a token continue as guest; a bad token is rejected.
func AuthMiddleware(verifier interfaces.TokenVerifier, identity interfaces.IdentityService, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), domain.Guest())))
				return
			}

			subject, email, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token_rejected", "Invalid session token", middleware.GetReqID(r.Context()), nil)
				respondError(w, "Invalid or expired token", http.StatusUnauthorized, nil)
				return
			}

			id := identity.Resolve(r.Context(), subject, email)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireTab rejects roles that cannot open tab and tells the client where
// to go instead.
func RequireTab(tab views.Tab) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := IdentityFromContext(r.Context()).Role
			if !views.CanAccess(role, tab) {
				respondJSON(w, http.StatusForbidden, ErrorResponse{
					Error:    "You don't have permission to access this view",
					Redirect: string(views.ResolveTab(role, string(tab))),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			if id.IsGuest() {
				respondError(w, "Sign in required", http.StatusUnauthorized, nil)
				return
			}
			respondError(w, "You don't have permission to access this resource", http.StatusForbidden, nil)
		})
	}
}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return id
	}
	return domain.Guest()
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
