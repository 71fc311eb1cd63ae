// SPDX-License-Identifier: MPL-2.0

package main

import cmd "artman-cli/cmd/artman"

func main() {
	cmd.Execute()
}
