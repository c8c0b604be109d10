// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package platform

// EnableUTF8Console is a no-op on non-Windows platforms, where consoles
// already speak UTF-8. It always reports success.
func EnableUTF8Console() bool {
	return true
}
