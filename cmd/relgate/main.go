package main

import (
	"os"

	"github.com/pyrelease/relgate/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
