package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-d", "postgres://app", "-m", "postgres://admin", "-n", "finance",
				"-w", "argon2id", "-u", "root", "-e", "root@example.com", "-p", "pw",
			},
			expected: &Config{
				DatabaseDSN:       "postgres://app",
				AdminDSN:          "postgres://admin",
				DatabaseName:      "finance",
				PasswordScheme:    "argon2id",
				BootstrapUsername: "root",
				BootstrapEmail:    "root@example.com",
				BootstrapPassword: "pw",
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"cmd", "-z", "ignored", "-n", "finance"},
			expected: &Config{
				DatabaseName: "finance",
			},
		},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
