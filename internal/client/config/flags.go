package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address of the web shell
//	-d string   path of the local SQLite database
//	-l int      simulated sign-in latency (in milliseconds)
//	-v string   log level
//
// args is filtered with flagx.FilterArgs so flags owned by other loaders
// (-c/-config) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "d", "l", "v")

	fs := flag.NewFlagSet("gesturetalk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database path")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")
	latency := fs.Int64("l", cfg.AuthLatency.Milliseconds(), "simulated sign-in latency (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AuthLatency = time.Duration(*latency) * time.Millisecond
	return nil
}
