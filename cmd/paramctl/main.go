// File: cmd/paramctl/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/xkilldash9x/paramctl/cmd"
	"github.com/xkilldash9x/paramctl/internal/observability"
)

const panicLogFile = "panic.log"

const banner = `
 paramctl %s
 Staubli TX2-40 HB parameter applier
 Type a command (apply, dump, diff, show, version), or 'exit'.

`

// Function variables for dependency injection/mocking in tests.
var (
	osWriteFile = os.WriteFile
	// Allows mocking os.Exit in tests.
	osExit = os.Exit
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// main is the entry point of the application.
func main() {
	defer handlePanic()

	// Interrupts cancel the context; store open/close and the shell observe it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// If arguments are passed, execute the command directly and exit.
	if len(os.Args) > 1 {
		if err := cmd.Execute(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				osExit(0)
			} else {
				osExit(1)
			}
		}
		return
	}

	if err := runInteractive(ctx, os.Stdin); err != nil {
		fmt.Fprintln(stderr, "Error reading from stdin:", err)
		osExit(1)
	}
}

// runInteractive reads commands line by line until EOF, "exit" or "quit".
func runInteractive(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(stdout, banner, cmd.Version)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(stdout, "paramctl > ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		executeInteractiveCommand(ctx, line)
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Exiting paramctl.")
	return nil
}

// executeInteractiveCommand runs one shell line on a fresh command tree so
// flags from one line never leak into the next.
func executeInteractiveCommand(ctx context.Context, line string) {
	rootCmd := cmd.NewRootCommand()
	rootCmd.SetArgs(strings.Fields(line))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Error: Command panicked: %v\n", r)
		}
	}()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// The shell keeps running; the error is only shown.
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}

// handlePanic records a crash in panic.log and exits non-zero.
func handlePanic() {
	if r := recover(); r != nil {
		observability.Sync()

		panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())

		if err := osWriteFile(panicLogFile, []byte(panicMessage), 0644); err != nil {
			fmt.Fprintf(stderr, "CRITICAL: Failed to write panic log: %v\n", err)
			fmt.Fprintf(stderr, "Panic details:\n%s\n", panicMessage)
			osExit(1)
			return
		}

		fmt.Fprintf(stderr, "\nCRASH DETECTED. Details logged to %s\n", panicLogFile)
		osExit(1)
	}
}
