package main

import (
	"fmt"
	"os"

	"github.com/teranos/atlas/cli"
	"github.com/teranos/atlas/errors"
	"github.com/teranos/atlas/logger"
)

func main() {
	defer logger.Cleanup()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) && (parseErr.Token != "" || len(parseErr.Suggestions) > 0) {
			fmt.Fprintln(os.Stderr, parseErr.FormatTerminal())
		}
		os.Exit(1)
	}
}
