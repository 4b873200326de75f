// Package registry provides the central "glue" between component names and
// the Go code implementing them.
//
// The Registry stores the mapping from the names used in pages and
// Add calls (e.g., "wallet-create") to view-model factories, and pairs each
// with its HTML template at resolution time.
//
// During application startup, the registry is populated by every Module and
// then validated to ensure that the Go code and the template directory are
// in sync, preventing a wide class of runtime errors.
package registry
