// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	"utf8run-cli/internal/config"

	"github.com/joho/godotenv"
)

// The three UTF-8 encoding hints the child always receives. They instruct
// the downstream runtime's standard-stream layer to treat text as UTF-8 and
// override the legacy Windows console encoding default.
const (
	// EnvIOEncoding hints the child runtime's stdio encoding.
	EnvIOEncoding = "PYTHONIOENCODING"
	// EnvUTF8Mode enables the child runtime's strict UTF-8 mode.
	EnvUTF8Mode = "PYTHONUTF8"
	// EnvLegacyConsoleIO overrides the legacy Windows console stdio encoding.
	EnvLegacyConsoleIO = "PYTHONLEGACYWINDOWSSTDIO"

	utf8Value    = "utf-8"
	utf8ModeOn   = "1"
	optionalMark = "?"
)

// EncodingHints returns the three UTF-8 environment variables with their
// literal values. A fresh map is returned on every call.
func EncodingHints() map[string]string {
	return map[string]string{
		EnvIOEncoding:      utf8Value,
		EnvUTF8Mode:        utf8ModeOn,
		EnvLegacyConsoleIO: utf8Value,
	}
}

// EnvBuilder builds the child-process environment. Precedence, higher wins:
//
//  1. Host environment
//  2. Configured env files (dotenv, in array order)
//  3. Configured inline env vars
//  4. The UTF-8 encoding hints
//
// The hints come last so a stray host or file value can never downgrade the
// encoding the launcher exists to guarantee.
type EnvBuilder struct {
	// Environ returns the host environment as "KEY=VALUE" strings.
	// When nil, os.Environ() is used.
	Environ func() []string
}

// NewEnvBuilder creates an EnvBuilder backed by the real host environment.
func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{}
}

// Build constructs the environment map following the precedence above.
func (b *EnvBuilder) Build(cfg config.EnvConfig) (map[string]string, error) {
	environ := os.Environ
	if b.Environ != nil {
		environ = b.Environ
	}

	// 1. Host environment
	env := make(map[string]string)
	for _, entry := range environ() {
		idx := findEnvSeparator(entry)
		if idx == -1 {
			continue
		}
		env[entry[:idx]] = entry[idx+1:]
	}

	// 2. Env files (dotenv, in array order)
	for _, path := range cfg.Files {
		if err := loadEnvFile(env, path); err != nil {
			return nil, err
		}
	}

	// 3. Inline vars
	maps.Copy(env, cfg.Vars)

	// 4. Encoding hints (highest priority)
	maps.Copy(env, EncodingHints())

	return env, nil
}

// loadEnvFile loads a dotenv file and merges its contents into env.
// Files suffixed with '?' are optional; a missing optional file is not an
// error. Later files override earlier values for the same keys.
func loadEnvFile(env map[string]string, path string) error {
	optional := strings.HasSuffix(path, optionalMark)
	if optional {
		path = strings.TrimSuffix(path, optionalMark)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	maps.Copy(env, vars)
	return nil
}

// EnvToSlice converts an environment map to a sorted "KEY=VALUE" slice
// suitable for exec.Cmd.Env.
func EnvToSlice(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for k, v := range env {
		entries = append(entries, k+"="+v)
	}
	sort.Strings(entries)
	return entries
}

// findEnvSeparator locates the '=' separating name from value. Windows
// environment blocks can contain entries whose name starts with '='
// (e.g. "=C:=C:\"); the separator search starts after the first byte.
func findEnvSeparator(entry string) int {
	if entry == "" {
		return -1
	}
	idx := strings.Index(entry[1:], "=")
	if idx == -1 {
		return -1
	}
	return idx + 1
}
