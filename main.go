package main

import (
	"os"

	"mediassist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
