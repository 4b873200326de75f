package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/superlumen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("superlumen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Superlumen - the renderer of the Superlumen desktop wallet.

Usage:
  superlumen [options] [VIEW]

Arguments:
  VIEW
    Name of the view-model component to open, e.g. 'wallet-create'.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "superlumen.hcl", "Path to the .hcl configuration file or directory.")
	viewFlag := flagSet.String("view", "", "View-model component to open.")
	locationFlag := flagSet.String("location", "", "Page location; the component is taken from its templates/<name>/ segment.")
	templatesFlag := flagSet.String("templates", "", "Directory holding the component templates. Defaults to the configured or embedded ones.")
	hostURLFlag := flagSet.String("host-url", "", "URL of the host process. Empty starts the in-process development host.")
	keyFileFlag := flagSet.String("key-file", "", "Key-file offered by the development host when one is opened.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	watchFlag := flagSet.Bool("watch", false, "Reload view-models when their templates change on disk.")
	onceFlag := flagSet.Bool("once", false, "Settle the start page and exit instead of running the UI loop.")
	dumpFlag := flagSet.String("dump", "", "Write the final document to this file, '-' for standard output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	view := *viewFlag
	if view == "" && flagSet.NArg() > 0 {
		view = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))}
	}
	slog.Debug("View determined.", "view", view)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      *configFlag,
		View:            view,
		Location:        *locationFlag,
		TemplatesDir:    *templatesFlag,
		HostURL:         *hostURLFlag,
		KeyFile:         *keyFileFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		Watch:           *watchFlag,
		Once:            *onceFlag,
		Dump:            *dumpFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
