// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform console utilities.
//
// The launcher needs the active console code page to be UTF-8 (65001) on
// Windows so that the child process's UTF-8 output renders correctly. On
// other platforms the console is already UTF-8 and no call is needed.
package platform
