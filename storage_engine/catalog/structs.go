package catalog

import (
	types "DuneArchive/types"
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/btree"
)

type CatalogManager struct {
	path        string
	stringWidth int

	mu      sync.RWMutex
	types   map[string]types.TypeDefinition
	ordered *btree.BTree // typeEntry, by name

	layouts *ristretto.Cache[string, *types.Layout]
}

// typeEntry is the btree item of the ordered type index.
type typeEntry struct {
	name string
}

// Less implements btree.Item interface
func (e *typeEntry) Less(than btree.Item) bool {
	return e.name < than.(*typeEntry).name
}
