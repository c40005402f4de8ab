package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KukushkinAleksei/mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only compile the script without executing")
	steps := fs.Int("steps", 0, "cap the number of evaluation steps (0 = unlimited)")
	recursion := fs.Int("recursion", 0, "cap the method call depth")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return errors.New("mython run: script path required")
	}

	input, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine := mython.NewEngine(mython.Config{StepQuota: *steps, RecursionLimit: *recursion})
	program, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if *checkOnly {
		return nil
	}
	if err := program.Run(context.Background(), mython.NewContext(os.Stdout)); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [flags] <script>")
	fmt.Fprintln(os.Stderr, "    execute a script; flags:")
	fmt.Fprintln(os.Stderr, "    -check")
	fmt.Fprintln(os.Stderr, "      only compile the script without executing")
	fmt.Fprintln(os.Stderr, "    -steps <n>")
	fmt.Fprintln(os.Stderr, "      cap the number of evaluation steps (0 = unlimited)")
	fmt.Fprintln(os.Stderr, "    -recursion <n>")
	fmt.Fprintln(os.Stderr, "      cap the method call depth")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  help")
	fmt.Fprintln(os.Stderr, "    show this message")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
