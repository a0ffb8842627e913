package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/notesapp/internal/flagx"
)

// parseFlags applies:
//
//	-a string     server base URL
//	-t duration   per-request timeout, e.g. 5s
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("notesctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
