// SPDX-License-Identifier: MIT

// Command lvsparse drives the sparse substrate from the shell: it converts
// edge lists into CSR, benchmarks the message-passing kernels on random
// graphs and reports the CPU features the kernels can rely on.
package main

import (
	"fmt"
	"os"
)

func main() {
	a := &app{}
	if err := a.execute(newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, "lvsparse:", err)
		os.Exit(1)
	}
}
