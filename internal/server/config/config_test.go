package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddrHTTP != ":8080" {
		t.Fatalf("EndpointAddrHTTP = %q", cfg.EndpointAddrHTTP)
	}
	if cfg.StorageBackend != "postgres" {
		t.Fatalf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.TokenValidityDuration != 60*time.Minute {
		t.Fatalf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	if cfg.SecretKey != "" || cfg.Issuer != "" || cfg.Audience != "" {
		t.Fatalf("signing settings must not have defaults: %+v", cfg)
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ISSUER", "env-issuer")
	t.Setenv("JWT_AUDIENCE", "env-audience")
	t.Setenv("JWT_EXPIRES_MINUTES", "15")
	t.Setenv("STORAGE_BACKEND", "inmemory")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.EndpointAddrHTTP != ":9090" {
		t.Fatalf("EndpointAddrHTTP = %q", cfg.EndpointAddrHTTP)
	}
	if cfg.SecretKey != "env-secret" || cfg.Issuer != "env-issuer" || cfg.Audience != "env-audience" {
		t.Fatalf("signing settings not overlaid: %+v", cfg)
	}
	if cfg.TokenValidityDuration != 15*time.Minute {
		t.Fatalf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	if cfg.StorageBackend != "inmemory" {
		t.Fatalf("StorageBackend = %q", cfg.StorageBackend)
	}
}

func TestParseEnv_BadMinutesIgnored(t *testing.T) {
	t.Setenv("JWT_EXPIRES_MINUTES", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	if cfg.TokenValidityDuration != 60*time.Minute {
		t.Fatalf("TokenValidityDuration = %v, want default", cfg.TokenValidityDuration)
	}
}

func TestNormalize_NonPositiveValidityFallsBack(t *testing.T) {
	cfg := &Config{TokenValidityDuration: -5 * time.Minute}
	cfg.normalize()
	if cfg.TokenValidityDuration != DefaultTokenValidity {
		t.Fatalf("TokenValidityDuration = %v, want %v", cfg.TokenValidityDuration, DefaultTokenValidity)
	}

	cfg = &Config{}
	cfg.normalize()
	if cfg.TokenValidityDuration != DefaultTokenValidity {
		t.Fatalf("zero validity: got %v, want %v", cfg.TokenValidityDuration, DefaultTokenValidity)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		SecretKey:      "k",
		Issuer:         "authbase",
		Audience:       "clients",
		StorageBackend: "postgres",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.SecretKey = " " }},
		{"missing issuer", func(c *Config) { c.Issuer = "" }},
		{"missing audience", func(c *Config) { c.Audience = "" }},
		{"missing backend", func(c *Config) { c.StorageBackend = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr_http": ":7070",
		"secret_key": "json-secret",
		"issuer": "json-issuer",
		"audience": "json-audience",
		"token_validity_minutes": 30
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	oldArgs := os.Args
	os.Args = []string{"test", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.EndpointAddrHTTP != ":7070" {
		t.Fatalf("EndpointAddrHTTP = %q", cfg.EndpointAddrHTTP)
	}
	if cfg.SecretKey != "json-secret" || cfg.Issuer != "json-issuer" || cfg.Audience != "json-audience" {
		t.Fatalf("signing settings not overlaid: %+v", cfg)
	}
	if cfg.TokenValidityDuration != 30*time.Minute {
		t.Fatalf("TokenValidityDuration = %v", cfg.TokenValidityDuration)
	}
	// Fields absent from the file keep their defaults.
	if cfg.StorageBackend != "postgres" {
		t.Fatalf("StorageBackend = %q, want default", cfg.StorageBackend)
	}
}
