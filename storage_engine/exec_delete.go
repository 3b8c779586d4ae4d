package storageengine

import (
	"DuneArchive/logging"
	"DuneArchive/types"
)

/*
This file contains the delete-by-primary-key operation. The heap file is
scanned under the type lock and every matching slot is cleared through the
heap file manager; pages are never removed, freed slots are reused by later
inserts.
*/

// DeleteByKey deletes every live record of typeName whose primary key equals
// key and reports whether anything was deleted.
func (se *StorageEngine) DeleteByKey(typeName string, key any) (bool, error) {
	layout, err := se.layout(typeName)
	if err != nil {
		return false, err
	}

	unlock := se.lockType(typeName)
	defer unlock()

	matches, err := se.collectMatches(layout, key)
	if err != nil {
		return false, err
	}

	log := logging.WithType("engine", typeName)
	deleted := false
	for _, m := range matches {
		ok, err := se.HeapManager.DeleteRecord(typeName, m.rid.PageNo, m.rid.Slot)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted = true
			log.Debug("record deleted", "rid", m.rid.String(), "key", key)
		}
	}
	return deleted, nil
}

// DeleteRecord deletes the record at rid, if it is live.
func (se *StorageEngine) DeleteRecord(typeName string, rid types.RecordID) (bool, error) {
	if _, err := se.layout(typeName); err != nil {
		return false, err
	}

	unlock := se.lockType(typeName)
	defer unlock()

	return se.HeapManager.DeleteRecord(typeName, rid.PageNo, rid.Slot)
}
