package config

import (
	"encoding/json"
	"os"

	"github.com/takatracker/takatracker/internal/flagx"
)

// JSONConfig is the DTO used only for reading JSON configuration files.
// After unmarshalling, its fields are copied into the runtime Config.
type JSONConfig struct {
	DatabaseDSN       string `json:"database_dsn"`
	AdminDSN          string `json:"admin_dsn"`
	DatabaseName      string `json:"database_name"`
	PasswordScheme    string `json:"password_scheme"`
	BootstrapUsername string `json:"bootstrap_username"`
	BootstrapEmail    string `json:"bootstrap_email"`
	BootstrapPassword string `json:"bootstrap_password"`
}

// parseJSON loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a broken explicit config is
// a startup-time mistake, not a runtime condition.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.AdminDSN = c.AdminDSN
	config.DatabaseName = c.DatabaseName
	config.PasswordScheme = c.PasswordScheme
	config.BootstrapUsername = c.BootstrapUsername
	config.BootstrapEmail = c.BootstrapEmail
	config.BootstrapPassword = c.BootstrapPassword
}
