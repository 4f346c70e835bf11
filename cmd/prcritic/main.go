package main

import (
	"os"

	"github.com/prcritic/prcritic/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
