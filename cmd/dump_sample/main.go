// dump_sample runs the seed and then dumps every heap file it produced,
// writing all output to cmd/sample_run_output.txt. Run from repo root:
// go run ./cmd/dump_sample
package main

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	storageengine "DuneArchive/storage_engine"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	dataDir    = "sample_run"
	outputFile = "cmd/sample_run_output.txt"
)

func main() {
	outPath := outputFile
	// If run from cmd/dump_sample, output next to binary
	if _, err := os.Stat("cmd"); os.IsNotExist(err) {
		outPath = "sample_run_output.txt"
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	root := repoRoot()
	// Clean previous run so seed starts fresh
	os.RemoveAll(filepath.Join(root, dataDir))

	fmt.Fprintln(f, "========== SEED (create types, records, searches, deletes) ==========")
	cmd := exec.Command("go", "run", "./cmd/seed")
	cmd.Stdout = f
	cmd.Stderr = f
	cmd.Dir = root
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(f, "seed exited with error: %v\n", err)
	}

	logging.InitWriter(io.Discard, logging.LevelError, "text")
	cfg := config.Default()
	cfg.DataDir = filepath.Join(root, dataDir)
	se, err := storageengine.NewStorageEngine(cfg)
	if err != nil {
		fmt.Fprintf(f, "open storage engine: %v\n", err)
		os.Exit(1)
	}
	defer se.Close()

	for _, def := range se.Types() {
		fmt.Fprintf(f, "\n========== INSPECT %s ==========\n", def.Name)
		if err := se.InspectTypeTo(f, def.Name); err != nil {
			fmt.Fprintf(f, "inspect error: %v\n", err)
		}
	}

	fmt.Fprintln(f, "\n========== VERIFY ==========")
	report, err := se.Verify(context.Background())
	if err != nil {
		fmt.Fprintf(f, "verify error: %v\n", err)
	} else {
		report.WriteTo(f)
	}

	fmt.Printf("Output written to %s\n", outPath)
}

func repoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
