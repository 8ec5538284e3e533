package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

type ctxKey string

const isAdminKey ctxKey = "isAdmin"

// Identify аннотирует запрос признаком администратора.
// Запрос считается административным только при валидном токене:
// параметр isAdmin без токена игнорируется.
func Identify(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			isAdmin := tokenValid(r, adminToken)
			ctx := context.WithValue(r.Context(), isAdminKey, isAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin закрывает административные маршруты: без валидного
// токена запрос отклоняется с 401
func RequireAdmin(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tokenValid(r, adminToken) {
				handlers.RespondUnauthorized(w, "admin token is missing or invalid")
				return
			}
			ctx := context.WithValue(r.Context(), isAdminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin возвращает признак администратора из контекста запроса
func IsAdmin(ctx context.Context) bool {
	v, ok := ctx.Value(isAdminKey).(bool)
	return ok && v
}

func tokenValid(r *http.Request, adminToken string) bool {
	if adminToken == "" {
		return false
	}
	token := r.Header.Get(AdminTokenHeader)
	return subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1
}
