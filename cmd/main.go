package main

import (
	"os"

	"github.com/lexgraph/lexgraph/cmd/lexgraph"
)

func main() {
	if err := lexgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
