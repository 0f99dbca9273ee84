package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/ratelimit"
)

// RequestHeader заголовок с идентификатором запроса
const RequestHeader = "X-Request-ID"

// RequestID присваивает запросу идентификатор, определяет адрес клиента
// и пишет строку лога по завершении
func RequestID(logger Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			ctx = WithClientIP(ctx, ratelimit.ClientIP(r, trustProxy))

			w.Header().Set(RequestHeader, requestID)
			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			logger.Info("%s %s - %d in %s (request_id=%s)",
				r.Method, r.URL.Path, wrapped.statusCode, time.Since(start), requestID)
		})
	}
}
