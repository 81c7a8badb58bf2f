package main

import (
	"os"

	"presupuesto/internal/cli"
	"presupuesto/internal/commands"
	applog "presupuesto/internal/log"
)

func main() {
	cli.LoadEnvFile()

	// Command output goes to stdout; keep logs out of it.
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format:    os.Getenv("LOG_FORMAT"),
		Component: applog.ComponentCLI,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
