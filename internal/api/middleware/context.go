package middleware

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	adminKey     contextKey = "admin"
	clientIPKey  contextKey = "client_ip"
)

// GetRequestID возвращает идентификатор запроса
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// IsAdmin сообщает, предъявил ли клиент токен администратора
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey).(bool)
	return admin
}

// WithAdmin помечает контекст как привилегированный
func WithAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// GetClientIP возвращает адрес клиента
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// WithClientIP сохраняет адрес клиента в контексте
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}
