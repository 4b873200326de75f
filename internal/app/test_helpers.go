package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/superlumen/internal/hcl_adapter"
	"github.com/specialistvlad/superlumen/internal/registry"
	"github.com/specialistvlad/superlumen/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. The full log
// is printed when SUPERLUMEN_TEST_LOGS is true.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(logBuffer, appConfig, hcl_adapter.NewLoader(), modules...)

	t.Cleanup(func() {
		if os.Getenv("SUPERLUMEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
