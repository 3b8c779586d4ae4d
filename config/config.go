package config

import (
	"DuneArchive/logging"
	"DuneArchive/types"
	"flag"
	"fmt"
	"path/filepath"
)

// Config collects every knob of an archive run. Relative file names are
// resolved against DataDir.
type Config struct {
	DataDir     string
	CatalogFile string
	PagesDir    string
	StringWidth int

	LogLevel   string
	LogFormat  string
	DebugLog   string
	StatusLog  string
	OutputFile string
}

func Default() Config {
	return Config{
		DataDir:     ".",
		CatalogFile: "catalog.txt",
		PagesDir:    "pages",
		StringWidth: types.DefaultStringWidth,
		LogLevel:    string(logging.LevelDebug),
		LogFormat:   "text",
		DebugLog:    "debug.log",
		StatusLog:   "log.csv",
		OutputFile:  "output.txt",
	}
}

// RegisterFlags binds the configuration to fs, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data", c.DataDir, "directory holding the catalog, heap files and logs")
	fs.StringVar(&c.CatalogFile, "catalog", c.CatalogFile, "catalog file name")
	fs.StringVar(&c.PagesDir, "pages", c.PagesDir, "heap file directory")
	fs.IntVar(&c.StringWidth, "string-width", c.StringWidth, "bytes reserved for every str field; fixed when the catalog is created")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug trace level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "debug trace format (text or json)")
	fs.StringVar(&c.DebugLog, "debug-log", c.DebugLog, "debug trace file")
	fs.StringVar(&c.StatusLog, "status-log", c.StatusLog, "per-line status log (csv)")
	fs.StringVar(&c.OutputFile, "output", c.OutputFile, "search result file")
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if c.StringWidth <= 0 {
		return fmt.Errorf("string width must be positive, got %d", c.StringWidth)
	}
	if 1+c.StringWidth > types.SlotSize {
		return fmt.Errorf("string width %d does not fit in a %d-byte slot", c.StringWidth, types.SlotSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func (c Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c Config) CatalogPath() string    { return c.resolve(c.CatalogFile) }
func (c Config) PagesPath() string      { return c.resolve(c.PagesDir) }
func (c Config) DebugLogPath() string   { return c.resolve(c.DebugLog) }
func (c Config) StatusLogPath() string  { return c.resolve(c.StatusLog) }
func (c Config) OutputFilePath() string { return c.resolve(c.OutputFile) }

// Logging returns the logger configuration for the debug trace.
func (c Config) Logging() logging.Config {
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = logging.LevelInfo
	}
	return logging.Config{
		Level:      lvl,
		OutputPath: c.DebugLogPath(),
		Format:     c.LogFormat,
		Truncate:   true,
	}
}
