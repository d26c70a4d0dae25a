package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/r-ashe/pgasync/internal/cli"
	"github.com/r-ashe/pgasync/pkg/pgasync"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgasync.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(pgasync.ExitCodeForError(err))
	}
}
