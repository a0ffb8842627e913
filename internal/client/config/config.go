// Package config loads settings for the notesctl command: defaults, an
// optional JSON file (-c/-config) and the -a/-t flags, in that order.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/flagx"
)

// GlobalFlags lists the flags consumed here. Everything else on the
// command line belongs to the subcommand.
var GlobalFlags = []string{"-a", "-t", "-c", "-config"}

type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CommandArgs returns os.Args without the program name and global flags.
func CommandArgs() []string {
	return flagx.StripArgs(os.Args[1:], GlobalFlags)
}
