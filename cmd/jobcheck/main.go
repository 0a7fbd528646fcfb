// Command jobcheck scores job postings for fraud likelihood.
//
// Usage:
//
//	jobcheck -mode serve   [-addr :8080] [-backend URL] [-db jobcheck.db]
//	jobcheck -mode analyze [-input posting.json] [-html]
//	jobcheck -mode mcp
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raysh454/jobcheck/internal/app"
	"github.com/raysh454/jobcheck/internal/cli"
	"github.com/raysh454/jobcheck/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "jobcheck: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.ParseArgs(argv)
	if err != nil {
		return err
	}

	// stdout carries the verdict or the MCP protocol in those modes
	var logger logging.Logger = logging.NewStdoutLogger("jobcheck")
	if args.Mode != cli.ModeServe {
		logger = logging.NewWriterLogger("jobcheck", os.Stderr)
	}

	cfg, err := app.LoadConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApplication(ctx, cfg, args, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", logging.Field{Key: "error", Value: err.Error()})
		}
	}()

	switch args.Mode {
	case cli.ModeAnalyze:
		in, closeIn, err := openInput(args.Input)
		if err != nil {
			return err
		}
		defer closeIn()
		return a.AnalyzeOnce(ctx, in, os.Stdout)
	case cli.ModeMCP:
		return a.ServeMCP()
	default:
		if err := a.Start(); err != nil {
			return err
		}
		return a.Serve(ctx)
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
