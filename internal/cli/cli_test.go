package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"build", "families", "validate", "pos-stats", "fetch-cldr", "serve", "publish", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	chdirForTest(t, t.TempDir())

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat("glfm.toml"); err != nil {
		t.Fatalf("glfm.toml not written: %v", err)
	}

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"config", "init"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("config init should refuse to overwrite without --force")
	}

	var out bytes.Buffer
	root = New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "show", "--config", filepath.Join(".", "glfm.toml")})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out.String(), "strategy = \"wikidata\"") {
		t.Errorf("config show output missing strategy:\n%s", out.String())
	}
}

func TestFamiliesRejectsUnknownStrategy(t *testing.T) {
	chdirForTest(t, t.TempDir())

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"families", "--strategy", "glottolog"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("families should fail for an unknown strategy")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "output/maps"); got != "output/maps" {
		t.Errorf("firstNonEmpty() = %q", got)
	}
	if got := firstNonEmpty("out", "output/maps"); got != "out" {
		t.Errorf("firstNonEmpty() = %q", got)
	}
}
