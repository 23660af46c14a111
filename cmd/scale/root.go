package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maumercado/scaleapi-go/internal/config"
	"github.com/maumercado/scaleapi-go/internal/logger"
)

// cli carries the global flags and output streams shared by every command.
type cli struct {
	jsonOutput bool
	logLevel   string
	configPath string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "scale",
		Short: "Scale task annotation CLI",
		Long:  `A CLI for creating, inspecting and canceling Scale tasks and batches.`,
		// Errors are printed once by Execute with the matching exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a config file")

	root.AddCommand(newTaskCmd(c))
	root.AddCommand(newBatchCmd(c))
	root.AddCommand(newTypesCmd(c))
	return root
}

// loadConfig resolves the config file and initializes logging from it.
func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}
	logger.InitWriter(c.stderr, level, !c.jsonOutput && os.Getenv("ENV") != "production")
	return cfg, nil
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err, c.jsonOutput)
		return exitCode(err)
	}
	return ExitSuccess
}
