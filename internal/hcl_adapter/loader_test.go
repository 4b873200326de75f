package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func testLoader(env ...string) *Loader {
	return &Loader{environ: func() []string { return env }}
}

func TestLoad_FullFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeFile(t, dir, "app.hcl", `
templates_dir = "ui/templates"
default_view  = "wallet-create"

host {
  url       = env.SUPERLUMEN_HOST
  namespace = "/renderer"
  timeout   = "500ms"
}

network "public" {
  label   = "Public Network"
  url     = "https://horizon.stellar.org"
  default = true
}

network "testnet" {
  url = "https://horizon-testnet.stellar.org"
}
`)

	// Act
	model, err := testLoader("SUPERLUMEN_HOST=http://localhost:7700", "IGNORED").Load(context.Background(), dir)

	// Assert
	require.NoError(t, err)
	want := &config.Model{
		TemplatesDir: "ui/templates",
		DefaultView:  "wallet-create",
		Host: config.Host{
			URL:       "http://localhost:7700",
			Namespace: "/renderer",
			Timeout:   500 * time.Millisecond,
		},
		Networks: []config.Network{
			{Name: "public", Label: "Public Network", URL: "https://horizon.stellar.org", Default: true},
			{Name: "testnet", Label: "testnet", URL: "https://horizon-testnet.stellar.org"},
		},
	}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MergesInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.hcl", `
default_view = "about"
network "public" {
  label = "Override"
  url   = "https://b"
}
`)
	writeFile(t, dir, "a.hcl", `
default_view = "wallet-create"
network "public" {
  url = "https://a"
}
`)

	model, err := testLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "about", model.DefaultView)
	require.Len(t, model.Networks, 1)
	assert.Equal(t, "Override", model.Networks[0].Label)
	assert.Equal(t, "https://b", model.Networks[0].URL)
	assert.Equal(t, config.DefaultTemplatesDir, model.TemplatesDir)
	assert.Equal(t, config.DefaultHostTimeout, model.Host.Timeout)
}

func TestLoad_MissingPathIsSkipped(t *testing.T) {
	model, err := testLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), model)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "syntax error", content: `default_view = `},
		{name: "unknown env var", content: `default_view = env.NOPE`},
		{name: "misspelled attribute", content: `templates_dri = "ui"`},
		{name: "unknown block", content: "window {\n width = 800\n}"},
		{name: "unknown host attribute", content: "host {\n adress = \"http://x\"\n}"},
		{name: "bad timeout", content: "host {\n timeout = \"soon\"\n}", wantErr: errs.ErrInvalidArgument},
		{
			name:    "two defaults",
			content: "network \"a\" {\n url = \"x\"\n default = true\n}\nnetwork \"b\" {\n url = \"y\"\n default = true\n}",
			wantErr: errs.ErrConflict,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "app.hcl", tc.content)
			_, err := testLoader().Load(context.Background(), p)
			require.Error(t, err)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestNewEvalContext_SkipsInvalidNames(t *testing.T) {
	ctx := newEvalContext([]string{"GOOD=1", "1BAD=2", "=x", "noequals"})
	env := ctx.Variables["env"]
	assert.True(t, env.Type().HasAttribute("GOOD"))
	assert.False(t, env.Type().HasAttribute("1BAD"))
}
