// Package config defines the format-agnostic configuration model of the
// renderer, the snapshot handed to view-models, and the interfaces through
// which both are obtained.
//
// The Model is loaded once at startup by a Loader (see hcl_adapter). The
// Snapshot is what the host answers to a config read; every view-model node
// fetches one at construction.
package config
