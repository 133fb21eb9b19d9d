// Command atomsense is the command-line interface: perceive atom types,
// inspect the dictionary, render depictions and compare fingerprints.
package main

import (
	"os"

	"github.com/turtacn/AtomSense/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
