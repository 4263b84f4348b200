package main

import (
	"os"

	"github.com/mmatt-net/site/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
