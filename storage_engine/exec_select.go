package storageengine

import (
	"DuneArchive/logging"
	"DuneArchive/types"
)

/*
This file contains the full-scan lookup by primary key. There is no index:
every page of the heap file is read and the key bytes of every live slot are
compared in place. Only matching records are decoded.
*/

// SearchByKey returns the values of every live record of typeName whose
// primary key equals key. No match is an empty result, not an error.
func (se *StorageEngine) SearchByKey(typeName string, key any) ([][]any, error) {
	records, err := se.SearchRecords(typeName, key)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(records))
	for i, rec := range records {
		rows[i] = rec.Values
	}
	return rows, nil
}

// SearchRecords is SearchByKey with the location of every match.
func (se *StorageEngine) SearchRecords(typeName string, key any) ([]types.Record, error) {
	layout, err := se.layout(typeName)
	if err != nil {
		return nil, err
	}

	matches, err := se.collectMatches(layout, key)
	if err != nil {
		return nil, err
	}

	records := make([]types.Record, 0, len(matches))
	for _, m := range matches {
		values, err := DecodeRecord(layout.Def.Fields, m.payload)
		if err != nil {
			return nil, err
		}
		records = append(records, types.Record{ID: m.rid, Values: values})
	}
	return records, nil
}

// ScanAll decodes every live record of typeName in page and slot order.
func (se *StorageEngine) ScanAll(typeName string) ([]types.Record, error) {
	layout, err := se.layout(typeName)
	if err != nil {
		return nil, err
	}

	var records []types.Record
	it := se.HeapManager.IteratePages(typeName)
	for it.Next() {
		pg := it.Page()
		for _, slot := range pg.LiveSlots() {
			values, err := DecodeRecord(layout.Def.Fields, pg.Slot(slot))
			if err != nil {
				return nil, err
			}
			records = append(records, types.Record{
				ID:     types.RecordID{PageNo: it.PageNo(), Slot: slot},
				Values: values,
			})
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// collectMatches scans for key and warns when more than one live record
// carries it, which the duplicate check on insert should make impossible.
func (se *StorageEngine) collectMatches(layout *types.Layout, key any) ([]match, error) {
	var matches []match
	err := se.scanKey(layout, key, func(m match) bool {
		matches = append(matches, m)
		return true
	})
	if err != nil {
		return nil, err
	}

	if len(matches) > 1 {
		rids := make([]string, len(matches))
		for i, m := range matches {
			rids[i] = m.rid.String()
		}
		logging.WithType("engine", layout.Def.Name).Warn("primary key is not unique",
			"key", key,
			"matches", len(matches),
			"rids", rids,
		)
	}
	return matches, nil
}

// scanKey calls fn for every live record whose key matches, in page and slot
// order, until fn returns false.
func (se *StorageEngine) scanKey(layout *types.Layout, key any, fn func(match) bool) error {
	typeName := layout.Def.Name
	keyField := layout.KeyField()

	it := se.HeapManager.IteratePages(typeName)
	for it.Next() {
		pg := it.Page()
		for _, slot := range pg.LiveSlots() {
			payload := pg.Slot(slot)
			ok, err := CompareKey(payload, key, keyField, layout.KeyOffset)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			m := match{
				rid:     types.RecordID{PageNo: it.PageNo(), Slot: slot},
				payload: append([]byte(nil), payload...),
			}
			if !fn(m) {
				return nil
			}
		}
	}
	return it.Err()
}
