package main

import (
	"os"

	"github.com/phzwart/boteval/cmd/boteval/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
