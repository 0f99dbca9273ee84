package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[server]
http_port = 9090

[database]
dbname = "appointments"

[booking]
timezone = "Europe/Moscow"
capacity_mode = "service"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "Europe/Moscow", cfg.Booking.Timezone)
	assert.Equal(t, domain.Settings{
		CapacityMode:   domain.CapacityModeService,
		DefaultStatus:  domain.StatusPending,
		MaxBookingDays: domain.DefaultMaxBookingDays,
	}, cfg.Booking.Settings())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_SecretsFromDotEnv(t *testing.T) {
	// godotenv не перезаписывает уже заданные переменные
	for _, key := range []string{"DB_PASSWORD", "ADMIN_TOKEN"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	writeFile(t, dir, ".env", "DB_PASSWORD=s3cret\nADMIN_TOKEN=admin-token\n")
	path := writeFile(t, dir, "config.toml", `
[database]
dbname = "appointments"
password = "from-file"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "admin-token", cfg.Admin.Token)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad timezone", content: "[database]\ndbname = \"a\"\n[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "bad status", content: "[database]\ndbname = \"a\"\n[booking]\ndefault_status = \"done\"\n"},
		{name: "bad horizon", content: "[database]\ndbname = \"a\"\n[booking]\nmax_booking_days = 1000\n"},
		{name: "missing dbname", content: "[server]\nhttp_port = 8080\n"},
		{name: "bad port", content: "[database]\ndbname = \"a\"\n[server]\nhttp_port = 70000\n"},
		{name: "not toml", content: "[database\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)

			_, err := Load(path)

			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}
