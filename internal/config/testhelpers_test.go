package config

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testFieldKey = "2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a2a"

var configEnvVars = []string{
	"CONFIG",
	"APP_FIELD_KEY",
	"APP_FIELD_KEY_PASSPHRASE",
	"APP_FIELD_KEY_SALT",
	"APP_LOG_FILE",
	"APP_VERSION",
	"STORAGE_DB_DSN",
	"WORKERS_HISTORY_RETENTION",
	"WORKERS_PRUNE_INTERVAL",
}

// clearEnvVars blanks every variable the config reads; t.Setenv restores
// the previous values when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

// withArgs resets flag.CommandLine and os.Args for one test.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs, oldFlags := os.Args, flag.CommandLine
	t.Cleanup(func() {
		os.Args = oldArgs
		flag.CommandLine = oldFlags
	})
	flag.CommandLine = flag.NewFlagSet("ridekeeper", flag.ContinueOnError)
	os.Args = append([]string{"ridekeeper"}, args...)
}

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	var data []byte
	if s, ok := v.(string); ok {
		data = []byte(strings.TrimSpace(s))
	} else {
		var err error
		data, err = json.Marshal(v)
		require.NoError(t, err)
	}
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}
