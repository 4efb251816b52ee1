package rest

import (
	"net/http"
	"strconv"
	"strings"

	"crm-service/internal/contextkeys"
	"crm-service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware проверяет bearer-токен и кладет данные пользователя
// в контекст запроса. Токены подписываются в auth use case (HS256).
func AuthMiddleware(secret string) func(next http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			rawToken, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || rawToken == "" {
				WriteJSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				WriteJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			sub, err := claims.GetSubject()
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}
			role, _ := claims["role"].(string)

			ctx := contextkeys.ContextWithUser(r.Context(), contextkeys.AuthUser{
				UserID: userID,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает дальше только пользователей с ролью admin.
// Ставится после AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := contextkeys.UserFromContext(r.Context())
		if !ok {
			WriteJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if user.Role != domain.RoleAdmin {
			WriteJSONError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
