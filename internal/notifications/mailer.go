package notifications

import "context"

// LogMailer пишет письма в лог вместо отправки
type LogMailer struct {
	logger Logger
}

// NewLogMailer создает mailer, логирующий письма
func NewLogMailer(logger Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send логирует письмо
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("Mail to %s: subject=%q body_len=%d", to, subject, len(body))
	return nil
}
