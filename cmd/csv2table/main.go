package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/csv2table/internal/cli"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(csv2table.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(csv2table.ExitCodeForError(err))
	}
}
