// Package screens holds the view-models of the wallet windows: about,
// recovery-questions and wallet-create.
//
// Each screen queries and wires only the markup under its own surface. Host
// replies arriving after a screen was torn down are dropped.
package screens
