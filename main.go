// SPDX-License-Identifier: MPL-2.0

package main

import cmd "composer-cli/cmd/composer"

func main() {
	cmd.Execute()
}
