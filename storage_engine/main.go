package storageengine

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	heapfile "DuneArchive/storage_engine/access/heapfile_manager"
	"DuneArchive/storage_engine/catalog"
	"DuneArchive/types"
	"fmt"
	"os"
	"sync"
)

/*
The main file of storage engine, that initializes the catalog manager and the
heap file manager and replays the catalog. The engine owns no persistent state
of its own: every operation resolves the type through the catalog and reads or
writes pages through the heap file manager.

	create record human Alice 30
	     ↓
	StorageEngine.Insert("human", ["Alice", "30"])
	     ├── CatalogManager.Resolve("human")
	     ├── Validate(fields, values)
	     ├── existsByKey("human", "Alice")   (scan every live slot)
	     ├── EncodeRecord(fields, values) → 128-byte payload
	     └── HeapManager.WriteRecord("human", payload) → RecordID{page, slot}
*/

func NewStorageEngine(cfg config.Config) (*StorageEngine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	catalogManager, err := catalog.NewCatalogManager(cfg.CatalogPath(), cfg.StringWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to init catalog manager: %w", err)
	}
	if err := catalogManager.Initialize(); err != nil {
		catalogManager.Close()
		return nil, err
	}
	if err := catalogManager.Load(); err != nil {
		catalogManager.Close()
		return nil, err
	}

	heapManager, err := heapfile.NewHeapFileManager(cfg.PagesPath())
	if err != nil {
		catalogManager.Close()
		return nil, fmt.Errorf("failed to init heap file manager: %w", err)
	}

	logging.WithComponent("engine").Info("storage engine ready",
		"data", cfg.DataDir,
		"catalog", catalogManager.Path(),
		"pages", heapManager.BaseDir(),
		"types", len(catalogManager.ListTypes()),
		"string_width", catalogManager.StringWidth(),
	)

	return &StorageEngine{
		Config:         cfg,
		CatalogManager: catalogManager,
		HeapManager:    heapManager,
		typeLocks:      make(map[string]*sync.Mutex),
	}, nil
}

func (se *StorageEngine) Close() {
	se.CatalogManager.Close()
}

// lockType acquires the mutex of typeName and returns its unlock function.
func (se *StorageEngine) lockType(typeName string) func() {
	se.typeLocksMu.Lock()
	mu, ok := se.typeLocks[typeName]
	if !ok {
		mu = &sync.Mutex{}
		se.typeLocks[typeName] = mu
	}
	se.typeLocksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// layout resolves typeName to its definition with field offsets.
func (se *StorageEngine) layout(typeName string) (*types.Layout, error) {
	return se.CatalogManager.Layout(typeName)
}
