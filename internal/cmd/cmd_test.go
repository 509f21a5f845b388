package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/watchdeck/watchdeck/internal/logging"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "watchdeck.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestCheck_ValidManifest(t *testing.T) {
	path := writeManifest(t, `
[[processes]]
name = "build"
command = ["make", "watch"]
success_regex = "done"

[[processes]]
name = "serve"
command = ["bin/serve"]
after = "build"
`)
	viper.Set("config", path)
	t.Cleanup(func() { viper.Set("config", "") })

	var out bytes.Buffer
	checkCmd.SetOut(&out)
	if err := runCheck(checkCmd, nil); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if got := out.String(); !bytes.Contains(out.Bytes(), []byte("2 processes ok")) {
		t.Errorf("output = %q, want process count", got)
	}
}

func TestCheck_RejectsUnknownAfter(t *testing.T) {
	path := writeManifest(t, `
[[processes]]
name = "serve"
command = ["bin/serve"]
after = "nonexistent"
`)
	viper.Set("config", path)
	t.Cleanup(func() { viper.Set("config", "") })

	if err := runCheck(checkCmd, nil); err == nil {
		t.Fatal("check accepted a manifest with an unknown after target")
	}
}

func TestCheck_RejectsCycle(t *testing.T) {
	path := writeManifest(t, `
[[processes]]
name = "a"
command = ["a"]
after = "b"

[[processes]]
name = "b"
command = ["b"]
after = "a"
`)
	viper.Set("config", path)
	t.Cleanup(func() { viper.Set("config", "") })

	if err := runCheck(checkCmd, nil); err == nil {
		t.Fatal("check accepted a manifest with a dependency cycle")
	}
}

func TestLogLevelFlag_ListsAcceptedLevels(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("log-level")
	if flag == nil {
		t.Fatal("log-level flag not registered")
	}
	for _, level := range logging.ValidLevels() {
		if !strings.Contains(flag.Usage, level) {
			t.Errorf("log-level usage %q missing %s", flag.Usage, level)
		}
	}
}
