package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatcat-project/fatcat/internal/config"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := config.Load(afero.NewMemMapFs(), "")
	require.Error(t, err)
}

func TestLoadWithoutHCLFileUsesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fatcat")
	cfg, err := config.Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/fatcat", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.StatementTimeout)
	assert.Empty(t, cfg.SigningKeys)
}

func TestLoadParsesHCLSigningKeysAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fatcat")

	fs := afero.NewMemMapFs()
	hcl := `
active_key_id = "k2"

signing_key "k1" {
  secret = "secret-one"
}

signing_key "k2" {
  secret = "secret-two"
}

tls_cert_path = "/etc/fatcat/tls.crt"
tls_key_path  = "/etc/fatcat/tls.key"
statement_timeout_ms = 5000
`
	require.NoError(t, afero.WriteFile(fs, "/etc/fatcat/config.hcl", []byte(hcl), 0o644))

	cfg, err := config.Load(fs, "/etc/fatcat/config.hcl")
	require.NoError(t, err)
	assert.Equal(t, "k2", cfg.ActiveKeyID)
	assert.Equal(t, []byte("secret-one"), cfg.SigningKeys["k1"])
	assert.Equal(t, []byte("secret-two"), cfg.SigningKeys["k2"])
	assert.Equal(t, "/etc/fatcat/tls.crt", cfg.TLSCertPath)
	assert.Equal(t, "/etc/fatcat/tls.key", cfg.TLSKeyPath)
	assert.Equal(t, 5*time.Second, cfg.StatementTimeout)
}

func TestLoadMissingHCLFileErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fatcat")
	_, err := config.Load(afero.NewMemMapFs(), "/does/not/exist.hcl")
	require.Error(t, err)
}

func TestLoadReportsEveryValidationProblemAtOnce(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/fatcat")

	fs := afero.NewMemMapFs()
	hcl := `
active_key_id = "missing"

signing_key "k1" {
  secret = ""
}

signing_key "k1" {
  secret = "secret-two"
}

tls_cert_path = "/etc/fatcat/tls.crt"
`
	require.NoError(t, afero.WriteFile(fs, "/etc/fatcat/config.hcl", []byte(hcl), 0o644))

	_, err := config.Load(fs, "/etc/fatcat/config.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty secret")
	assert.Contains(t, err.Error(), "duplicate signing_key")
	assert.Contains(t, err.Error(), `active_key_id "missing"`)
	assert.Contains(t, err.Error(), "tls_cert_path and tls_key_path")
}
