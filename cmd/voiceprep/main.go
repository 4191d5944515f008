package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"voiceprep/internal/services"
)

// exitInterrupted matches the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "voiceprep: interrupted; rerun to resume from the last checkpoint")
			return exitInterrupted
		}
		fmt.Fprintln(os.Stderr, "voiceprep:", err)
		if hint := services.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		return 1
	}
	return 0
}
