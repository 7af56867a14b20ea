package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kaustubh424/Database-Health-Monitoring-Dashboard/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string        `yaml:"name"`
	Port    int           `env:"SAMPLE_PORT"    yaml:"port"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" yaml:"timeout"`
	Debug   bool          `env:"SAMPLE_DEBUG"   yaml:"debug"`
	Nested  struct {
		Hosts []string `env:"SAMPLE_HOSTS" yaml:"hosts"`
	} `yaml:"nested"`
}

func writeFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	path := writeFile(t, "name: dash\nport: 9000\ntimeout: 5s\n")

	cfg, err := config.Load[sample](path)
	require.NoError(t, err)

	assert.Equal(t, "dash", cfg.Name)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("SAMPLE_PORT", "9100")
	t.Setenv("SAMPLE_TIMEOUT", "250ms")
	t.Setenv("SAMPLE_DEBUG", "yes")
	t.Setenv("SAMPLE_HOSTS", "a, b")

	path := writeFile(t, "port: 9000\n")

	cfg, err := config.Load[sample](path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"a", "b"}, cfg.Nested.Hosts)
}

func TestLoad_MissingFileUsesZeroValue(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	cfg, err := config.Load[sample](filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	_, err := config.Load[sample](writeFile(t, "port: [unterminated\n"))
	require.Error(t, err)
}

func TestLoadWithDefaults_EnvBeatsDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("SAMPLE_PORT", "7000")

	cfg, err := config.LoadWithDefaults[sample](writeFile(t, ""), func(s *sample) {
		if s.Port == 0 {
			s.Port = 8080
		}
		if s.Name == "" {
			s.Name = "default"
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "default", cfg.Name)
}

func TestLoad_EnvFileIsApplied(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("SAMPLE_PORT=6100\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	// Registered so t.Setenv restores the variable godotenv sets.
	t.Setenv("SAMPLE_PORT", "")
	require.NoError(t, os.Unsetenv("SAMPLE_PORT"))

	cfg, err := config.Load[sample](writeFile(t, "port: 9000\n"))
	require.NoError(t, err)
	assert.Equal(t, 6100, cfg.Port)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, "")
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv(config.ConfigPathEnv, "/etc/dbhealth.yml")
	assert.Equal(t, "/etc/dbhealth.yml", config.GetConfigPath("config.yml"))
}

func TestValidateOneOf(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.ValidateOneOf("mode", "demo", "demo", "real"))

	err := config.ValidateOneOf("mode", "live", "demo", "real")
	var vErr *config.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "mode", vErr.Field)
}
