// Package main provides the themes CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/themes/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
