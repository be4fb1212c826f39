// Package config loads server configuration: a mandatory DATABASE_URL
// from the environment, and an optional HCL file for signing key
// material, TLS paths, and the statement-timeout override.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
)

// SigningKey is one of the HCL file's signing_key blocks: a key-id and
// its HS256 secret, hex- or base64-free (raw string, expected to come
// from a secrets manager in production).
type SigningKey struct {
	KeyID  string `hcl:"key_id,label"`
	Secret string `hcl:"secret"`
}

// fileConfig is the optional HCL file's schema.
type fileConfig struct {
	ActiveKeyID        string       `hcl:"active_key_id,optional"`
	SigningKeys        []SigningKey `hcl:"signing_key,block"`
	TLSCertPath        string       `hcl:"tls_cert_path,optional"`
	TLSKeyPath         string       `hcl:"tls_key_path,optional"`
	StatementTimeoutMS int          `hcl:"statement_timeout_ms,optional"`
}

// Config is the fully resolved server configuration.
type Config struct {
	DatabaseURL string

	ActiveKeyID string
	SigningKeys map[string][]byte

	TLSCertPath string
	TLSKeyPath  string

	StatementTimeout time.Duration
}

// defaultStatementTimeout is the default per-transaction bound.
const defaultStatementTimeout = 30 * time.Second

// Load reads DATABASE_URL (mandatory) from the environment and, if
// hclPath is non-empty, parses it as an HCL config file using fs (an
// afero.Fs, so tests can supply an in-memory filesystem instead of
// touching disk).
func Load(fs afero.Fs, hclPath string) (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := &Config{
		DatabaseURL:      dbURL,
		SigningKeys:      map[string][]byte{},
		StatementTimeout: defaultStatementTimeout,
	}

	if hclPath == "" {
		return cfg, nil
	}

	raw, err := afero.ReadFile(fs, hclPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", hclPath, err)
	}

	var fc fileConfig
	if err := hclsimple.Decode(hclPath, raw, nil, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", hclPath, err)
	}

	if err := validateFileConfig(&fc); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", hclPath, err)
	}

	for _, k := range fc.SigningKeys {
		cfg.SigningKeys[k.KeyID] = []byte(k.Secret)
	}
	cfg.ActiveKeyID = fc.ActiveKeyID
	cfg.TLSCertPath = fc.TLSCertPath
	cfg.TLSKeyPath = fc.TLSKeyPath
	if fc.StatementTimeoutMS > 0 {
		cfg.StatementTimeout = time.Duration(fc.StatementTimeoutMS) * time.Millisecond
	}

	return cfg, nil
}

// validateFileConfig collects every problem with fc rather than stopping
// at the first, so an operator fixing a config file sees every mistake in
// one pass instead of one per re-run.
func validateFileConfig(fc *fileConfig) error {
	var result *multierror.Error

	seen := map[string]bool{}
	for _, k := range fc.SigningKeys {
		if k.KeyID == "" {
			result = multierror.Append(result, fmt.Errorf("signing_key block with empty key_id"))
			continue
		}
		if seen[k.KeyID] {
			result = multierror.Append(result, fmt.Errorf("duplicate signing_key id %q", k.KeyID))
		}
		seen[k.KeyID] = true
		if k.Secret == "" {
			result = multierror.Append(result, fmt.Errorf("signing_key %q has an empty secret", k.KeyID))
		}
	}

	if fc.ActiveKeyID != "" && !seen[fc.ActiveKeyID] {
		result = multierror.Append(result, fmt.Errorf("active_key_id %q does not match any signing_key block", fc.ActiveKeyID))
	}

	if (fc.TLSCertPath == "") != (fc.TLSKeyPath == "") {
		result = multierror.Append(result, fmt.Errorf("tls_cert_path and tls_key_path must both be set or both be empty"))
	}

	return result.ErrorOrNil()
}
