package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/model"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/auth"
	"github.com/CRYPTOSKY168/tuktik-car-hire-sub002/internal/shared/logger"
)

type contextKey string

const (
	ContextKeyAccountID contextKey = "account_id"
	ContextKeyRole      contextKey = "role"
)

// AccountIDFromContext достает account id, подмешанный middleware
func AccountIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// OptionalAuthMiddleware подмешивает account из JWT, если заголовок
// есть и валиден. Без заголовка запрос идет дальше как гостевой;
// битый токен — отказ, молча понижать до гостя нельзя.
func OptionalAuthMiddleware(jwtService *auth.JWTService, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				log.Warn(logger.Entry{
					Action:  "trip_jwt_validation_failed",
					Message: err.Error(),
				})
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccountID, claims.AccountID)
			ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// AdminAuthMiddleware требует валидный JWT с ролью ADMIN или OPERATOR
func AdminAuthMiddleware(jwtService *auth.JWTService, log *logger.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				log.Warn(logger.Entry{
					Action:  "trip_jwt_validation_failed",
					Message: err.Error(),
				})
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if claims.Role != model.RoleAdmin && claims.Role != model.RoleOperator {
				log.Warn(logger.Entry{
					Action:  "trip_auth_forbidden",
					Message: "insufficient permissions",
					Additional: map[string]any{
						"account_id": claims.AccountID,
						"role":       claims.Role,
					},
				})
				respondForbidden(w, "admin role required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccountID, claims.AccountID)
			ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// respondUnauthorized отправляет 401 ответ
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}

// respondForbidden отправляет 403 ответ
func respondForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
