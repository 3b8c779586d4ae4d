package main

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	executor "DuneArchive/query_executor"
	storageengine "DuneArchive/storage_engine"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
)

/*
archive runs a file of commands against the store in -data:

	archive [flags] <input-file>

Outputs, all under -data unless given as absolute paths:

	debug.log   structured trace of the run, truncated at start
	log.csv     one status row per processed line, appended across runs
	output.txt  search results and parse failures of this run only

With -check the heap files are audited after the run and the report is
printed to stdout; the exit status is 2 if the audit finds any issue.
*/

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Default()
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	check := fs.Bool("check", false, "verify every heap file after the run")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: archive [flags] <input-file>\n\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\n%s", executor.CommandHelp)
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	inputPath := fs.Arg(0)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := logging.Init(cfg.Logging()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open debug log: %v\n", err)
		return 1
	}
	defer logging.Close()

	runID := uuid.NewString()
	log := logging.WithRun(runID)
	log.Info("starting archive run", "input", inputPath, "data", cfg.DataDir)

	input, err := os.Open(inputPath)
	if err != nil {
		writeFatal(cfg, fmt.Sprintf("Error: Input file '%s' not found", inputPath))
		log.Error("cannot open input", "error", err)
		return 1
	}
	defer input.Close()

	engine, err := storageengine.NewStorageEngine(cfg)
	if err != nil {
		writeFatal(cfg, fmt.Sprintf("Error initializing catalog: %v", err))
		log.Error("engine init failed", "error", err)
		return 1
	}
	defer engine.Close()

	ex, err := executor.NewExecutor(engine, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Error("executor init failed", "error", err)
		return 1
	}
	defer ex.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := ex.Run(ctx, input)
	if err != nil {
		writeFatal(cfg, fmt.Sprintf("Error reading input file: %v", err))
		log.Error("run aborted", "error", err)
		return 1
	}
	log.Info("archive run complete",
		"lines", sum.Lines,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
	)

	if *check {
		report, err := engine.Verify(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: verify: %v\n", err)
			return 1
		}
		report.WriteTo(os.Stdout)
		if !report.OK() {
			return 2
		}
	}
	return 0
}

// writeFatal replaces output.txt with a single error line, for failures that
// stop the run before any input line is processed.
func writeFatal(cfg config.Config, msg string) {
	if err := os.WriteFile(cfg.OutputFilePath(), []byte(msg+"\n"), 0644); err != nil {
		fmt.Fprintln(os.Stderr, msg)
	}
}
