package config

import (
	"flag"
	"os"
	"time"

	"github.com/vkarpenko/valentine/internal/flagx"
)

// parseFlags populates selected viewer Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   card service base URL
//	-d string   local SQLite database path
//	-t int      request timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "s", config.ServerBaseURL, "card service base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "local database path")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
