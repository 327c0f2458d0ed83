package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t, http.NotFoundHandler())

	logDir := filepath.Join(filepath.Dir(env.configPath), "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("mkdir logs: %v", err)
	}
	content := "time=now level=INFO msg=started\n" +
		"time=now level=WARN msg=\"poll failed\"\n" +
		"time=now level=INFO msg=recovered\n"
	if err := os.WriteFile(filepath.Join(logDir, "aura.log"), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, err := runCLI(t, env, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "started")
	requireContains(t, out, "recovered")

	out, err = runCLI(t, env, "logs", "--level", "warn")
	if err != nil {
		t.Fatalf("logs --level: %v", err)
	}
	requireContains(t, out, "poll failed")
	if strings.Contains(out, "started") {
		t.Fatalf("level filter leaked INFO entries:\n%s", out)
	}

	out, err = runCLI(t, env, "logs", "-n", "1")
	if err != nil {
		t.Fatalf("logs -n 1: %v", err)
	}
	requireContains(t, out, "recovered")
	if strings.Contains(out, "started") {
		t.Fatalf("line limit leaked earlier entries:\n%s", out)
	}
}

func TestLogsCommandNoFile(t *testing.T) {
	env := setupCLITestEnv(t, http.NotFoundHandler())

	out, err := runCLI(t, env, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log entries")
}
