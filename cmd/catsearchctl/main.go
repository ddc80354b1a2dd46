package main

import (
	"os"

	"github.com/kailas-cloud/catsearch/cmd/catsearchctl/commands"
)

func main() {
	if err := commands.NewRootCmd(commands.DefaultOptions()).Execute(); err != nil {
		os.Exit(1)
	}
}
