// Package main is the entry point for the triageq CLI.
package main

import (
	"os"

	"github.com/openclinic/triageq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
