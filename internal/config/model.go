package config

import (
	"fmt"
	"time"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// Default values applied by Defaults.
const (
	DefaultTemplatesDir = "templates"
	DefaultHostTimeout  = 2 * time.Second
)

// Model is the whole renderer configuration.
type Model struct {
	TemplatesDir string
	// DefaultView is mounted when neither the location nor the page names a
	// view-model.
	DefaultView string
	Host        Host
	Networks    []Network
}

// Host describes how to reach the host process. An empty URL selects the
// in-process development host.
type Host struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Network is a selectable ledger network.
type Network struct {
	Name    string `json:"name,omitempty"`
	Label   string `json:"label"`
	URL     string `json:"url"`
	Default bool   `json:"default,omitempty"`
}

// Defaults returns a Model with every optional field filled in.
func Defaults() *Model {
	return &Model{
		TemplatesDir: DefaultTemplatesDir,
		Host:         Host{Namespace: "/", Timeout: DefaultHostTimeout},
	}
}

// Validate checks cross-field constraints.
func (m *Model) Validate() error {
	if m.Host.Timeout < 0 {
		return fmt.Errorf("%w: host timeout must not be negative", errs.ErrInvalidArgument)
	}
	seen := make(map[string]bool, len(m.Networks))
	defaults := 0
	for _, nw := range m.Networks {
		if nw.URL == "" {
			return fmt.Errorf("%w: network '%s' has no url", errs.ErrInvalidArgument, nw.Name)
		}
		if seen[nw.Name] {
			return fmt.Errorf("%w: network '%s' is declared twice", errs.ErrConflict, nw.Name)
		}
		seen[nw.Name] = true
		if nw.Default {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("%w: %d networks are marked default", errs.ErrConflict, defaults)
	}
	return nil
}

// Snapshot returns the view-model facing part of the configuration.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{Networks: append([]Network(nil), m.Networks...)}
}
