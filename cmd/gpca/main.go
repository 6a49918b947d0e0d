package main

import (
	"log/slog"
	"os"

	"gpca/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(cli.GetExitCode(err))
	}
}
