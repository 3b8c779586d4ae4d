package storageengine

import (
	"DuneArchive/types"
)

/*
This file contains the Create Type process
The type definition is validated and persisted by the catalog manager, which
appends one line to catalog.txt. The heap file itself is created lazily by the
first page access.
*/

// CreateType registers a new record type. pkIndex is 1-based.
func (se *StorageEngine) CreateType(name string, fieldCount, pkIndex int, fields []types.FieldSpec) (types.TypeDefinition, error) {
	return se.CatalogManager.CreateType(name, fieldCount, pkIndex, fields)
}

// Types returns every known type ordered by name.
func (se *StorageEngine) Types() []types.TypeDefinition {
	return se.CatalogManager.ListTypes()
}
