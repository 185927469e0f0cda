package main

import (
	"os"

	"github.com/roach88/ledd/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
