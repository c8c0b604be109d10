// SPDX-License-Identifier: MPL-2.0

// Package config loads the launcher configuration.
//
// Configuration is resolved from, in increasing precedence:
//
//  1. Built-in defaults (DefaultConfig)
//  2. config.cue in the platform config directory
//  3. utf8run.cue in the current directory
//  4. UTF8RUN_* environment variables
//
// Files are CUE and are validated against an embedded schema before being
// merged into Viper. The launcher deliberately has no CLI flags (every
// argument is forwarded to the child verbatim), so environment variables are
// the only per-invocation override.
package config
