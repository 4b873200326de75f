// Package app wires the renderer together: it loads the configuration,
// registers the view-model components, connects to the host, opens the
// requested page on a fresh document and runs the UI loop until the window
// closes. It is decoupled from any specific entrypoint like a CLI.
package app
