// Seed program: writes a sample command file into sample_run/ and runs it
// through the archive executor, creating two types with a handful of records.
// Run: go run ./cmd/seed
// Then inspect: sample_run/catalog.txt, sample_run/pages/*.bin, sample_run/output.txt
package main

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	executor "DuneArchive/query_executor"
	storageengine "DuneArchive/storage_engine"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const dataDir = "sample_run"

// expectedFailures counts the lines of sampleCommands that are meant to fail:
// the duplicate id, the search for a deleted human, the non-numeric id and the
// incomplete create type.
const expectedFailures = 4

var sampleCommands = []string{
	"# houses and people of Arrakis",
	"create type house 3 1 name str planet str members int",
	"create type human 4 2 name str id int house str age int",
	"",
	"create record house Atreides Caladan 8000",
	"create record house Harkonnen GiediPrime 12000",
	"create record house Corrino Kaitain 30000",
	"",
	"create record human Paul 1 Atreides 15",
	"create record human Jessica 2 Atreides 35",
	"create record human Leto 3 Atreides 51",
	"create record human Vladimir 4 Harkonnen 80",
	"create record human Feyd 5 Harkonnen 17",
	"create record human Shaddam 6 Corrino 72",
	"create record human Irulan 7 Corrino 20",
	"create record human Gurney 8 Atreides 40",
	"create record human Duncan 9 Atreides 38",
	"create record human Thufir 10 Atreides 64",
	"create record human Piter 11 Harkonnen 55",
	"create record human Rabban 12 Harkonnen 42",
	"",
	"create record human Impostor 1 Atreides 99",
	"search record human 1",
	"search record human 11",
	"search record house Harkonnen",
	"delete record human 4",
	"search record human 4",
	"create record human Alia 13 Atreides 4",
	"search record human 13",
	"search record human one",
	"create type",
}

func main() {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	inputPath := filepath.Join(dataDir, "input.txt")
	if err := os.WriteFile(inputPath, []byte(strings.Join(sampleCommands, "\n")+"\n"), 0644); err != nil {
		log.Fatalf("write input: %v", err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDir
	if err := logging.Init(cfg.Logging()); err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logging.Close()

	se, err := storageengine.NewStorageEngine(cfg)
	if err != nil {
		log.Fatalf("storage engine: %v", err)
	}
	defer se.Close()

	ex, err := executor.NewExecutor(se, cfg)
	if err != nil {
		log.Fatalf("executor: %v", err)
	}

	in, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer in.Close()

	fmt.Printf("Running %s ...\n", inputPath)
	sum, err := ex.Run(context.Background(), in)
	if err != nil {
		log.Fatalf("run: %v", err)
	}
	if err := ex.Close(); err != nil {
		log.Fatalf("close executor: %v", err)
	}
	fmt.Printf("lines=%d skipped=%d succeeded=%d failed=%d\n",
		sum.Lines, sum.Skipped, sum.Succeeded, sum.Failed)
	logging.Info("seed run finished", "input", inputPath, "succeeded", sum.Succeeded, "failed", sum.Failed)
	if sum.Failed != expectedFailures {
		logging.Warn("unexpected number of failing lines", "want", expectedFailures, "got", sum.Failed)
	}

	out, err := os.ReadFile(cfg.OutputFilePath())
	if err != nil {
		log.Fatalf("read output: %v", err)
	}
	fmt.Printf("\n--- %s ---\n%s", cfg.OutputFilePath(), out)

	fmt.Println("\nDone. Inspect:")
	fmt.Println("  - Catalog:        ", cfg.CatalogPath())
	fmt.Println("  - Heap files:     ", filepath.Join(cfg.PagesPath(), "*.bin"))
	fmt.Println("  - Status log:     ", cfg.StatusLogPath())
	fmt.Println("  - Debug trace:    ", cfg.DebugLogPath())
}
