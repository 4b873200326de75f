package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/superlumen/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "defaults",
			want: app.Config{ConfigPath: "superlumen.hcl", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "positional view",
			args: []string{"wallet-create"},
			want: app.Config{ConfigPath: "superlumen.hcl", View: "wallet-create", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "view flag wins over argument",
			args: []string{"--view", "about", "wallet-create"},
			want: app.Config{ConfigPath: "superlumen.hcl", View: "about", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "every flag",
			args: []string{
				"--config", "conf.d",
				"--location", "file:///app/templates/about/index.html",
				"--templates", "tpl",
				"--host-url", "http://localhost:3000",
				"--key-file", "/tmp/wallet.key",
				"--healthcheck-port", "8080",
				"--log-format", "JSON",
				"--log-level", "Debug",
				"--watch",
				"--dump", "-",
			},
			want: app.Config{
				ConfigPath:      "conf.d",
				Location:        "file:///app/templates/about/index.html",
				TemplatesDir:    "tpl",
				HostURL:         "http://localhost:3000",
				KeyFile:         "/tmp/wallet.key",
				HealthcheckPort: 8080,
				LogFormat:       "json",
				LogLevel:        "debug",
				Watch:           true,
				Dump:            "-",
			},
		},
		{
			name: "once",
			args: []string{"--once", "about"},
			want: app.Config{ConfigPath: "superlumen.hcl", View: "about", LogFormat: "text", LogLevel: "info", Once: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			assert.False(t, shouldExit)
			require.NotNil(t, cfg)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-host-url")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--nope"}, wantMsg: "flag provided but not defined"},
		{name: "bad log format", args: []string{"--log-format", "xml"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"--log-level", "trace"}, wantMsg: "invalid log-level"},
		{name: "bad port", args: []string{"--healthcheck-port", "-5"}, wantMsg: "out of range"},
		{name: "once with watch", args: []string{"--once", "--watch"}, wantMsg: "cannot be combined"},
		{name: "extra arguments", args: []string{"about", "wallet-create"}, wantMsg: "unexpected arguments: wallet-create"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, shouldExit)
			assert.Nil(t, cfg)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
