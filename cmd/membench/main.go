// Command membench runs word-search and array-averaging micro-benchmarks.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/membench/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
