package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	prefsPath  string
}

// setupCLITestEnv starts a fake backend and writes a config file pointing the
// CLI at it, with cache and logs confined to the test tempdir.
func setupCLITestEnv(t *testing.T, handler http.Handler) cliTestEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	config := fmt.Sprintf("api_bind = %q\ncache_dir = %q\nlog_dir = %q\n",
		server.URL, filepath.Join(dir, "cache"), filepath.Join(dir, "logs"))
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return cliTestEnv{
		server:     server,
		configPath: configPath,
		prefsPath:  filepath.Join(dir, "prefs.toml"),
	}
}

// runCLI executes the command tree with args and returns captured stdout.
func runCLI(t *testing.T, env cliTestEnv, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := newRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", env.configPath, "--prefs", env.prefsPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}
