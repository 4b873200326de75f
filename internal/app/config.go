package app

import (
	"errors"
	"fmt"
)

// DumpStdout makes Config.Dump write to the app output.
const DumpStdout = "-"

// Config holds all the necessary configuration for an App instance to run.
// Non-empty fields override the values loaded from ConfigPath.
type Config struct {
	ConfigPath string // hcl file or directory

	View         string // component to open
	Location     string // page URL, the component is taken from its templates/ segment
	TemplatesDir string
	HostURL      string
	KeyFile      string // offered by the development host

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Watch bool
	Once  bool
	Dump  string // file receiving the final document, DumpStdout for the output
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.Once && cfg.Watch {
		return nil, errors.New("once and watch cannot be combined")
	}
	return &cfg, nil
}
