package config

import "context"

// Snapshot is the configuration a view-model sees. It is also the model of
// the host's config.read reply.
type Snapshot struct {
	Networks []Network `json:"networks"`
}

// DefaultNetwork returns the network marked default, falling back to the
// first one.
func (s Snapshot) DefaultNetwork() (Network, bool) {
	for _, nw := range s.Networks {
		if nw.Default {
			return nw, true
		}
	}
	if len(s.Networks) > 0 {
		return s.Networks[0], true
	}
	return Network{}, false
}

// Provider reads the current snapshot from wherever it lives.
type Provider interface {
	ReadConfig(ctx context.Context) (Snapshot, error)
}

// Static is a Provider that always answers the same snapshot.
type Static Snapshot

// ReadConfig implements Provider.
func (s Static) ReadConfig(context.Context) (Snapshot, error) {
	return Snapshot(s), nil
}

// Loader reads a Model from one or more files or directories.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
