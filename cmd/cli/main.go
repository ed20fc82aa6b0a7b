package main

import (
	"os"

	"github.com/andiamoid/andiamo-admin/internal/client/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
