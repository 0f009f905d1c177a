package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// errReported marks failures a command has already printed itself, so main
// exits nonzero without echoing a duplicate message.
var errReported = errors.New("failure already reported")

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
