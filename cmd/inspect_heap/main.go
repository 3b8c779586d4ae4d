// Inspect the heap file of one or more record types.
// Usage: go run ./cmd/inspect_heap [-data dir] <type>...
// Example: go run ./cmd/inspect_heap -data sample_run human planet
package main

import (
	"DuneArchive/config"
	storageengine "DuneArchive/storage_engine"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D56F4"}).
	Bold(true)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("inspect_heap", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	all := fs.Bool("all", false, "inspect every type in the catalog")
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 && !*all {
		fmt.Fprintf(os.Stderr, "Usage: %s [-data dir] <type>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-data dir] -all\n", os.Args[0])
		os.Exit(1)
	}

	se, err := storageengine.NewStorageEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer se.Close()

	names := fs.Args()
	if *all {
		names = nil
		for _, def := range se.Types() {
			names = append(names, def.Name)
		}
	}

	failed := false
	for _, name := range names {
		fmt.Println(titleStyle.Render("== " + name + " =="))
		if err := se.InspectTypeTo(os.Stdout, name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			failed = true
		}
		fmt.Println()
	}
	if failed {
		os.Exit(1)
	}
}
