// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"utf8run-cli/internal/config"
)

func fakeEnviron(entries ...string) func() []string {
	return func() []string { return entries }
}

func TestEncodingHints(t *testing.T) {
	t.Parallel()

	hints := EncodingHints()
	want := map[string]string{
		"PYTHONIOENCODING":         "utf-8",
		"PYTHONUTF8":               "1",
		"PYTHONLEGACYWINDOWSSTDIO": "utf-8",
	}
	for k, v := range want {
		if hints[k] != v {
			t.Errorf("EncodingHints()[%q] = %q, want %q", k, hints[k], v)
		}
	}
	if len(hints) != len(want) {
		t.Errorf("EncodingHints() has %d entries, want %d", len(hints), len(want))
	}

	// Mutating the returned map must not affect later calls.
	hints["PYTHONUTF8"] = "0"
	if EncodingHints()["PYTHONUTF8"] != "1" {
		t.Error("EncodingHints() returns a shared map")
	}
}

func TestEnvBuilderBuild_HostPlusHints(t *testing.T) {
	t.Parallel()

	b := &EnvBuilder{Environ: fakeEnviron("PATH=/usr/bin", "HOME=/home/u")}
	env, err := b.Build(config.EnvConfig{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if env["PATH"] != "/usr/bin" {
		t.Errorf("host PATH not inherited, got %q", env["PATH"])
	}
	if env["PYTHONIOENCODING"] != "utf-8" || env["PYTHONUTF8"] != "1" || env["PYTHONLEGACYWINDOWSSTDIO"] != "utf-8" {
		t.Errorf("encoding hints missing from built env: %v", env)
	}
}

func TestEnvBuilderBuild_HintsAlwaysWin(t *testing.T) {
	t.Parallel()

	b := &EnvBuilder{Environ: fakeEnviron("PYTHONUTF8=0", "PYTHONIOENCODING=latin-1")}
	env, err := b.Build(config.EnvConfig{
		Vars: map[string]string{"PYTHONLEGACYWINDOWSSTDIO": "cp936"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if env["PYTHONUTF8"] != "1" {
		t.Errorf("PYTHONUTF8 = %q, want 1", env["PYTHONUTF8"])
	}
	if env["PYTHONIOENCODING"] != "utf-8" {
		t.Errorf("PYTHONIOENCODING = %q, want utf-8", env["PYTHONIOENCODING"])
	}
	if env["PYTHONLEGACYWINDOWSSTDIO"] != "utf-8" {
		t.Errorf("PYTHONLEGACYWINDOWSSTDIO = %q, want utf-8", env["PYTHONLEGACYWINDOWSSTDIO"])
	}
}

func TestEnvBuilderBuild_FilesAndVars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	if err := os.WriteFile(first, []byte("A=1\nB=from-first\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("B=from-second\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := &EnvBuilder{Environ: fakeEnviron()}
	env, err := b.Build(config.EnvConfig{
		Files: []string{first, second},
		Vars:  map[string]string{"C": "inline"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if env["A"] != "1" {
		t.Errorf("A = %q, want 1", env["A"])
	}
	if env["B"] != "from-second" {
		t.Errorf("B = %q, want later file to win", env["B"])
	}
	if env["C"] != "inline" {
		t.Errorf("C = %q, want inline", env["C"])
	}
}

func TestEnvBuilderBuild_OptionalFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.env")

	b := &EnvBuilder{Environ: fakeEnviron()}
	if _, err := b.Build(config.EnvConfig{Files: []string{missing + "?"}}); err != nil {
		t.Errorf("optional missing file should not error, got %v", err)
	}
	if _, err := b.Build(config.EnvConfig{Files: []string{missing}}); err == nil {
		t.Error("required missing file should error")
	}
}

func TestEnvToSlice(t *testing.T) {
	t.Parallel()

	got := EnvToSlice(map[string]string{"B": "2", "A": "1"})
	if len(got) != 2 || got[0] != "A=1" || got[1] != "B=2" {
		t.Errorf("EnvToSlice = %v, want sorted [A=1 B=2]", got)
	}
}

func TestFindEnvSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry string
		want  int
	}{
		{"KEY=value", 3},
		{"KEY=a=b", 3},
		{"=C:=C:\\", 3}, // Windows drive-relative entry
		{"", -1},
		{"NOEQUALS", -1},
	}

	for _, tt := range tests {
		if got := findEnvSeparator(tt.entry); got != tt.want {
			t.Errorf("findEnvSeparator(%q) = %d, want %d", tt.entry, got, tt.want)
		}
	}
}

func TestInvocationCommandLine(t *testing.T) {
	t.Parallel()

	inv := &Invocation{Program: "uv", Args: []string{"run", "src/demo.py", "--config", "x.yaml"}}
	want := "uv run src/demo.py --config x.yaml"
	if got := inv.CommandLine(); got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}

	if !strings.HasPrefix(inv.CommandLine(), inv.Program) {
		t.Error("CommandLine() must start with the program")
	}
}
