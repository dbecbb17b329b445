// Crimp - A workbench for LLM-oriented JSON compression
package main

import (
	"os"

	"github.com/Sridharvn/crimp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
