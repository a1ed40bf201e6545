package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Durations use timex.Duration so both "1m" and integer nanoseconds
// are accepted.
type JsonConfig struct {
	EndpointAddrGRPC             string            `json:"endpoint_addr_grpc"`
	DatabaseDSN                  *string           `json:"database_dsn"`
	SecretKey                    string            `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration    `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration    `json:"refresh_token_validity_duration"`
	Users                        map[string]string `json:"users"`
	LogLevel                     string            `json:"log_level"`
	LogFormat                    string            `json:"log_format"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Keys absent from the file keep their current values;
// "database_dsn": "" explicitly selects the in-memory store. Panics if the
// file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
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

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.Users != nil {
		config.Users = c.Users
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
}
