package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasplit/cmd/oasplit/commands"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	root := commands.NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, commands.ErrInvalidSpec) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
