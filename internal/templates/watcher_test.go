package templates

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsComponent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "about"), 0o755))
	view := filepath.Join(dir, "about", ViewFile)
	require.NoError(t, os.WriteFile(view, []byte("v1"), 0o644))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(view, []byte("v2"), 0o644))

	select {
	case name := <-w.Changes:
		assert.Equal(t, "about", name)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "about"), 0o755))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "about", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.html"), []byte("x"), 0o644))

	select {
	case name := <-w.Changes:
		t.Errorf("unexpected change event: %q", name)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Component(t *testing.T) {
	w := &Watcher{Dir: "/t"}
	testCases := []struct {
		file   string
		want   string
		wantOK bool
	}{
		{"/t/about/view.html", "about", true},
		{"/t/about/index.html", "about", true},
		{"/t/about/style.css", "", false},
		{"/t/top.html", "", false},
		{"/t/a/b/view.html", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			got, ok := w.component(tc.file)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
