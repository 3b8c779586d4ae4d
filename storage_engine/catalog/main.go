package catalog

import (
	"DuneArchive/logging"
	types "DuneArchive/types"
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/btree"
)

/*
This file is the main access of Catalog Manager
Catalog manager maps type names to their definitions and persists them in one
append-only text file, one type per line:

	name|fieldCount|pk|field1:int,field2:str

pk is 1-based in the file. Nothing is ever rewritten or removed; Load replays
the whole file into memory.
*/

const btreeDegree = 8

// NewCatalogManager returns a catalog backed by the file at path. String
// fields of every type get stringWidth bytes.
func NewCatalogManager(path string, stringWidth int) (*CatalogManager, error) {
	if stringWidth <= 0 {
		return nil, types.Errorf(types.ErrInvalidDefinition, "string width must be positive, got %d", stringWidth)
	}

	layouts, err := ristretto.NewCache(&ristretto.Config[string, *types.Layout]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, types.Internal(err)
	}

	return &CatalogManager{
		path:        path,
		stringWidth: stringWidth,
		types:       make(map[string]types.TypeDefinition),
		ordered:     btree.New(btreeDegree),
		layouts:     layouts,
	}, nil
}

func (cm *CatalogManager) Path() string {
	return cm.path
}

// Initialize creates an empty catalog file, and its directory, if none
// exists, and checks the configured string width against the one the
// catalog was created with. Calling it again is harmless.
func (cm *CatalogManager) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(cm.path), 0755); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to create catalog directory: %w", err)
	}
	file, err := os.OpenFile(cm.path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to create catalog file: %w", err)
	}
	if err := file.Close(); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to create catalog file: %w", err)
	}
	return cm.bindStringWidth()
}

// Load discards the in-memory catalog and replays the catalog file. A
// missing file loads as an empty catalog.
func (cm *CatalogManager) Load() error {
	log := logging.WithComponent("catalog")

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.types = make(map[string]types.TypeDefinition)
	cm.ordered.Clear(false)
	cm.layouts.Clear()

	file, err := os.Open(cm.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("no catalog file, starting empty", "path", cm.path)
			return nil
		}
		return types.Errorf(types.ErrCatalogIO, "failed to open catalog: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		def, err := parseLine(line, cm.stringWidth)
		if err != nil {
			return types.Errorf(types.ErrCatalogCorrupt, "catalog line %d: %w", lineNo, err)
		}
		if _, exists := cm.types[def.Name]; exists {
			return types.Errorf(types.ErrCatalogCorrupt, "catalog line %d: type %s defined twice", lineNo, def.Name)
		}
		cm.register(def)
	}
	if err := scanner.Err(); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to read catalog: %w", err)
	}

	log.Info("catalog loaded", "path", cm.path, "types", len(cm.types))
	return nil
}

// CreateType validates and persists a new type. pkIndex is 1-based.
func (cm *CatalogManager) CreateType(name string, fieldCount, pkIndex int, fields []types.FieldSpec) (types.TypeDefinition, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.types[name]; exists {
		return types.TypeDefinition{}, types.Errorf(types.ErrDuplicateType, "type %s already exists", name)
	}

	def, err := buildDefinition(name, fieldCount, pkIndex, fields, cm.stringWidth)
	if err != nil {
		return types.TypeDefinition{}, err
	}

	if err := cm.appendLine(formatLine(def)); err != nil {
		return types.TypeDefinition{}, err
	}
	cm.register(def)

	logging.WithType("catalog", name).Info("type created",
		"fields", len(def.Fields),
		"pk", def.KeyField().Name,
		"record_width", def.RecordWidth(),
	)
	return def, nil
}

func (cm *CatalogManager) appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(cm.path), 0755); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to create catalog directory: %w", err)
	}
	file, err := os.OpenFile(cm.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to open catalog for append: %w", err)
	}
	_, werr := file.WriteString(line + "\n")
	cerr := file.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to append to catalog: %w", err)
	}
	return nil
}

// register adds def to the in-memory maps. Caller holds cm.mu.
func (cm *CatalogManager) register(def types.TypeDefinition) {
	cm.types[def.Name] = def
	cm.ordered.ReplaceOrInsert(&typeEntry{name: def.Name})
}

// Resolve returns the definition of the named type.
func (cm *CatalogManager) Resolve(name string) (types.TypeDefinition, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	def, ok := cm.types[name]
	if !ok {
		return types.TypeDefinition{}, types.Errorf(types.ErrTypeNotFound, "type %s not found", name)
	}
	return def, nil
}

func (cm *CatalogManager) TypeExists(name string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, ok := cm.types[name]
	return ok
}

// ListTypes returns every known type ordered by name.
func (cm *CatalogManager) ListTypes() []types.TypeDefinition {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	defs := make([]types.TypeDefinition, 0, cm.ordered.Len())
	cm.ordered.Ascend(func(item btree.Item) bool {
		defs = append(defs, cm.types[item.(*typeEntry).name])
		return true
	})
	return defs
}

// Close releases the layout cache.
func (cm *CatalogManager) Close() {
	cm.layouts.Close()
}
