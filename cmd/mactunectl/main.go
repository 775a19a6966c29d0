package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/mactune/internal/config"
	"github.com/danmuck/mactune/internal/logging"
	"github.com/danmuck/mactune/internal/mode"
	"github.com/danmuck/mactune/internal/pipeline"
	"github.com/danmuck/mactune/internal/tools"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain wires the live pipeline. The CLI surface is one optional
// positional argument: the literal --dry-run simulates, anything else
// applies for real.
func realMain(args []string, stdout, stderr io.Writer) int {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	m := mode.Parse(arg)

	cfg, err := config.Load(config.ResolvePath())
	if err != nil {
		fmt.Fprintf(stderr, "mactunectl: %v\n", err)
		return 1
	}
	logger := logging.ConfigureRuntime(cfg.LogLevel)

	orch := pipeline.New(m, tools.ExecRunner{}, cfg.ArtifactRoot, stdout, logger)
	return runPipeline(orch, stderr)
}

// runPipeline maps a pipeline error to the process exit code. Guard and
// artifact failures land here; soft failures never surface as errors.
func runPipeline(orch *pipeline.Orchestrator, stderr io.Writer) int {
	if err := orch.Run(); err != nil {
		fmt.Fprintf(stderr, "mactunectl: %v\n", err)
		return 1
	}
	return 0
}
