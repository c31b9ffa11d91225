// SPDX-License-Identifier: MPL-2.0

// hostlog inspects and exercises the environment layer of the hostlog
// logging library.
package main

import cmd "github.com/hostlog/hostlog/cmd/hostlog"

func main() {
	cmd.Execute()
}
