// Command entreg feeds a weight vector through one entropy-regularized
// multiplicative-weights update, or projects a vector onto the simplex.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
