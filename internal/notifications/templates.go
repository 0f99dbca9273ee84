package notifications

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Получатели уведомлений, в порядке отправки
const (
	RecipientCustomer = "customer"
	RecipientEmployee = "employee"
	RecipientAdmin    = "admin"
)

var recipients = []string{RecipientCustomer, RecipientEmployee, RecipientAdmin}

// Template тема и тело письма. Enabled по умолчанию true.
type Template struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// IsEnabled возвращает false только при явном enabled: false
func (t Template) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Templates получатель -> статус записи -> шаблон
type Templates map[string]map[string]Template

// Lookup возвращает шаблон для получателя и статуса
func (t Templates) Lookup(recipient, status string) (Template, bool) {
	byStatus, ok := t[recipient]
	if !ok {
		return Template{}, false
	}
	tmpl, ok := byStatus[status]
	return tmpl, ok
}

// ParseTemplates разбирает шаблоны из YAML
func ParseTemplates(data []byte) (Templates, error) {
	templates := Templates{}
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadTemplates, err)
	}

	for recipient := range templates {
		if !isRecipient(recipient) {
			return nil, fmt.Errorf("%w: unknown recipient %q", ErrLoadTemplates, recipient)
		}
	}

	return templates, nil
}

// LoadTemplates читает шаблоны из файла. Пустой путь = без шаблонов.
func LoadTemplates(path string) (Templates, error) {
	if path == "" {
		return Templates{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadTemplates, err)
	}

	return ParseTemplates(data)
}

func isRecipient(key string) bool {
	for _, r := range recipients {
		if r == key {
			return true
		}
	}
	return false
}
