package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// AdminHeader заголовок с токеном администратора
const AdminHeader = "X-Admin-Token"

const msgAdminRequired = "Admin token required"

// Admin определяет привилегированного клиента по токену.
// Запрос без токена проходит дальше как публичный; пустой настроенный токен отключает привилегии.
func Admin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminHeader)
			admin := token != "" && provided != "" &&
				subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

// RequireAdmin пропускает только привилегированных клиентов
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				logger.Warn("%s %s - admin access denied (request_id=%s)", r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgAdminRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
