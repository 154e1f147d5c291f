package config

import (
	"flag"
	"os"

	"github.com/takatracker/takatracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   application database DSN
//	-m string   maintenance (admin) database DSN
//	-n string   application database name
//	-w string   password scheme ("sha256" or "argon2id")
//	-u string   bootstrap account username
//	-e string   bootstrap account email
//	-p string   bootstrap account password
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags owned by
// the JSON overlay.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-n", "-w", "-u", "-e", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "application database DSN")
	fs.StringVar(&config.AdminDSN, "m", config.AdminDSN, "maintenance database DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "application database name")
	fs.StringVar(&config.PasswordScheme, "w", config.PasswordScheme, "password scheme")
	fs.StringVar(&config.BootstrapUsername, "u", config.BootstrapUsername, "bootstrap account username")
	fs.StringVar(&config.BootstrapEmail, "e", config.BootstrapEmail, "bootstrap account email")
	fs.StringVar(&config.BootstrapPassword, "p", config.BootstrapPassword, "bootstrap account password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
