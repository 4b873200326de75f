// Package cli turns the renderer's command line into an app.Config. Invalid
// input is reported as an ExitError carrying the process exit code.
package cli
