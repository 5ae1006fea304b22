package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandGen   = "gen"
	CommandCheck = "check"
	CommandDump  = "dump"
	CommandFmt   = "fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command    string
	ConfigPath string // YAML or HCL builder definitions
	Package    string // overrides the file's default package pattern

	JSON bool // check: print diagnostics as JSON

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandGen, CommandCheck, CommandDump, CommandFmt:
	case "":
		return nil, errors.New("command is required")
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.ConfigPath == "" {
		return nil, errors.New("config path is required")
	}

	return &cfg, nil
}
