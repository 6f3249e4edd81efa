package main

import (
	"os"

	"github.com/pilacorp/go-rdf-proof/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
