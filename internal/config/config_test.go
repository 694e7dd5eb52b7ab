package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8083
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "smc_fleet"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300
migrations_dir = "migrations"

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "fleet-service"

[staff_service]
url = "http://localhost:8081"
timeout = 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "smc_fleet", cfg.Database.DBName)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "http://localhost:8081", cfg.StaffService.URL)
}

func TestLoad_DSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=smc_fleet sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate string
	}{
		{
			name: "missing staff service url",
			mutate: `
[server]
http_port = 8083
[database]
host = "localhost"
dbname = "smc_fleet"
[logs]
file = "logs/app.log"
`,
		},
		{
			name: "missing database host",
			mutate: `
[server]
http_port = 8083
[database]
dbname = "smc_fleet"
[logs]
file = "logs/app.log"
[staff_service]
url = "http://localhost:8081"
`,
		},
		{
			name: "metrics enabled without path",
			mutate: `
[server]
http_port = 8083
[database]
host = "localhost"
dbname = "smc_fleet"
[logs]
file = "logs/app.log"
[metrics]
enabled = true
[staff_service]
url = "http://localhost:8081"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate))
			assert.Error(t, err)
		})
	}
}
