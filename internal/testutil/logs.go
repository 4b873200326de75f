package testutil

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewLogger returns a debug-level text logger writing to a fresh SafeBuffer.
// With SUPERLUMEN_TEST_LOGS=true the captured output is dumped when the test
// finishes.
func NewLogger(t *testing.T) (*slog.Logger, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("SUPERLUMEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return logger, buf
}

// AssertLogContains fails unless every fragment appears in the captured log.
func AssertLogContains(t *testing.T, buf *SafeBuffer, fragments ...string) {
	t.Helper()
	out := buf.String()
	for _, f := range fragments {
		require.True(t, strings.Contains(out, f), "expected log fragment %q was not found in:\n%s", f, out)
	}
}
