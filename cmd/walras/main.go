// Command walras computes the Walrasian equilibrium of the fixed two-firm,
// two-good production economy and prints the verification and welfare
// report.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
