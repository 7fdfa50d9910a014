package middlewares

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into a CallerIdentity stored on the
// request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		claims, err := utils.ParseAccessToken(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		caller := models.CallerIdentity{
			ID:         claims.Subject,
			Role:       claims.Role,
			Credential: token,
		}

		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		m.Log.Debug("Middlewares.Authenticate resolved caller",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerIDKey, caller.ID),
			zap.String(constvars.LoggingCallerRoleKey, caller.Role),
		)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_CALLER_IDENTITY_KEY, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose role is not in roles. It must run after
// Authenticate.
func (m *Middlewares) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := CallerIdentityFromContext(r.Context())
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			if !slices.Contains(roles, caller.Role) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil, caller.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
