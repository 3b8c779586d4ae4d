package storageengine

import (
	"DuneArchive/config"
	heapfile "DuneArchive/storage_engine/access/heapfile_manager"
	"DuneArchive/storage_engine/catalog"
	"DuneArchive/types"
	"sync"
)

type StorageEngine struct {
	Config         config.Config
	CatalogManager *catalog.CatalogManager
	HeapManager    *heapfile.HeapFileManager

	// One mutex per type name, held across check-then-write in Insert and
	// scan-then-delete in DeleteByKey.
	typeLocksMu sync.Mutex
	typeLocks   map[string]*sync.Mutex
}

// VerifyReport is the result of auditing every heap file.
type VerifyReport struct {
	Types []TypeReport
}

// TypeReport is the audit result of one type's heap file.
type TypeReport struct {
	Type        string
	Pages       int64
	FileBytes   int64
	LiveRecords int
	Issues      []Issue
}

// Issue is one inconsistency found by Verify.
type Issue struct {
	RID     types.RecordID // Slot is -1 for page-level issues
	Message string
}

// match is a live record whose key matched during a scan.
type match struct {
	rid     types.RecordID
	payload []byte
}
