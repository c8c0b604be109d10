// SPDX-License-Identifier: MPL-2.0

//go:build windows

package platform

import "syscall"

// cpUTF8 is the Windows code page identifier for UTF-8.
const cpUTF8 = 65001

// EnableUTF8Console switches the console's input and output code pages to
// UTF-8. It returns false when either call fails; callers treat failure as
// non-fatal and proceed regardless.
func EnableUTF8Console() bool {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	setConsoleOutputCP := kernel32.NewProc("SetConsoleOutputCP")
	setConsoleCP := kernel32.NewProc("SetConsoleCP")

	outOK, _, _ := setConsoleOutputCP.Call(uintptr(cpUTF8))
	inOK, _, _ := setConsoleCP.Call(uintptr(cpUTF8))
	return outOK != 0 && inOK != 0
}
