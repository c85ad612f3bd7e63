package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/riceyield/internal/cli"
	"github.com/alexanderramin/riceyield/internal/llm"
	"github.com/alexanderramin/riceyield/internal/predict"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logOut, toTerminal, closeLog, err := logOutput()
	if err != nil {
		return err
	}
	defer closeLog()

	app := &cli.App{
		PredictConfig: predict.LoadConfig(),
		AdviceConfig:  llm.LoadConfig(),
		Version:       version,
		LogOutput:     logOut,
		LogToTerminal: toTerminal,
	}

	// Detect interactive terminal: with no subcommand the form opens only
	// on a TTY.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// logOutput picks the structured log destination: RICEYIELD_LOG_FILE if
// set, else stderr when RICEYIELD_LOG_CALLS is true, else nowhere. The
// bool reports whether logs go to the terminal.
func logOutput() (io.Writer, bool, func(), error) {
	if path := os.Getenv("RICEYIELD_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, false, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, false, func() { f.Close() }, nil
	}

	if on, _ := strconv.ParseBool(os.Getenv("RICEYIELD_LOG_CALLS")); on {
		return os.Stderr, true, func() {}, nil
	}
	return io.Discard, false, func() {}, nil
}
