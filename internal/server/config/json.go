package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sbperudesarrollo/authbase/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its non-empty fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP     string `json:"endpoint_addr_http"`
	DatabaseDSN          string `json:"database_dsn"`
	StorageBackend       string `json:"storage_backend"`
	SecretKey            string `json:"secret_key"`
	Issuer               string `json:"issuer"`
	Audience             string `json:"audience"`
	TokenValidityMinutes int    `json:"token_validity_minutes"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics: a broken config file must never let the
// server come up on defaults.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.Issuer != "" {
		config.Issuer = c.Issuer
	}
	if c.Audience != "" {
		config.Audience = c.Audience
	}
	if c.TokenValidityMinutes != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityMinutes) * time.Minute
	}
}
