// Command cupcake is the entry point for the cupcake binary.
package main

import (
	"os"

	"github.com/eqtylab/cupcake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
