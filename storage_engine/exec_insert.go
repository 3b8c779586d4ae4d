package storageengine

import (
	"DuneArchive/logging"
	"DuneArchive/types"
)

/*
This file contains the insert record operation

	Insert("human", values)
	     ├── resolve layout
	     ├── Validate
	     ├── lock type
	     │     ├── existsByKey(key)  → DuplicateKey if found
	     │     ├── EncodeRecord
	     │     └── HeapManager.WriteRecord → RecordID
	     └── unlock

The duplicate check and the write happen under one per-type lock, so two
callers in this process cannot both insert the same key.
*/

// Insert stores a new record and returns where it was written.
func (se *StorageEngine) Insert(typeName string, values []any) (types.RecordID, error) {
	layout, err := se.layout(typeName)
	if err != nil {
		return types.RecordID{}, err
	}
	fields := layout.Def.Fields

	if err := se.Validate(fields, values); err != nil {
		return types.RecordID{}, err
	}
	key := values[layout.Def.PrimaryKey]

	unlock := se.lockType(typeName)
	defer unlock()

	exists, err := se.existsByKey(layout, key)
	if err != nil {
		return types.RecordID{}, err
	}
	if exists {
		return types.RecordID{}, types.Errorf(types.ErrDuplicateKey, "%s with %s=%v already exists", typeName, layout.KeyField().Name, key)
	}

	payload, err := EncodeRecord(fields, values)
	if err != nil {
		return types.RecordID{}, err
	}

	rid, err := se.HeapManager.WriteRecord(typeName, payload)
	if err != nil {
		return types.RecordID{}, err
	}

	logging.WithType("engine", typeName).Debug("record inserted", "rid", rid.String(), "key", key)
	return rid, nil
}

// ExistsByKey reports whether a live record of typeName has key as its
// primary key.
func (se *StorageEngine) ExistsByKey(typeName string, key any) (bool, error) {
	layout, err := se.layout(typeName)
	if err != nil {
		return false, err
	}
	return se.existsByKey(layout, key)
}

func (se *StorageEngine) existsByKey(layout *types.Layout, key any) (bool, error) {
	found := false
	err := se.scanKey(layout, key, func(match) bool {
		found = true
		return false
	})
	return found, err
}
