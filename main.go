// SPDX-License-Identifier: MPL-2.0

package main

import cmd "utf8run-cli/cmd/utf8run"

func main() {
	cmd.Execute()
}
