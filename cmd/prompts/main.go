package main

import (
	"os"

	"github.com/grovetools/prompts/cli"
	"github.com/grovetools/prompts/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
		os.Exit(1)
	}
}
