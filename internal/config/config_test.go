package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is loaded,
// and clears the variables Load reads.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	for _, key := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "GIN_MODE",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "DB_TIMEZONE", "DB_PG_DRIVER", "SQLITE_PATH",
		"LOG_FILE", "LOG_LEVEL", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
	} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, v) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/registry.db")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_MAX_BACKUPS", "3")
	t.Setenv("LOG_COMPRESS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/registry.db", cfg.Database.SQLitePath)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.False(t, cfg.Log.Compress)
}

func TestLoadFileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":7000"
  gin_mode: release
database:
  host: db.internal
  name: registry
log:
  file: "-"
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "registry_env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "release", cfg.HTTP.GinMode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "registry_env", cfg.Database.Name)
	assert.Equal(t, "5432", cfg.Database.Port, "unset keys keep their defaults")
	assert.Equal(t, "-", cfg.Log.File)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := Defaults().Database
	assert.Equal(t, "host=localhost user=postgres password=password dbname=transport port=5432 sslmode=disable TimeZone=UTC", c.DSN())

	c.SQLitePath = "registry.db"
	assert.Equal(t, "registry.db?_foreign_keys=on", c.SQLiteDSN())
	c.SQLitePath = "file:x?mode=memory"
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", c.SQLiteDSN())
}

func TestInitDBSQLite(t *testing.T) {
	db, err := InitDB(DatabaseConfig{Driver: "sqlite", SQLitePath: "file:config_test?mode=memory&cache=shared"}, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("line_routes"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(DatabaseConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}
