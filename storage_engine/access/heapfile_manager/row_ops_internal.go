package heapfile

import (
	page "DuneArchive/storage_engine/page"
	"DuneArchive/types"
	"errors"
)

/* this file contains internal functions for page and record operations, they do not take the heap file lock */

func (hf *HeapFile) readPageInternal(pageNo int64) (*page.Page, error) {
	count, err := hf.pageCount()
	if err != nil {
		return nil, err
	}
	if pageNo >= count {
		return nil, types.Errorf(types.ErrPageNotFound, "page %d not found (heap file %s has %d pages)", pageNo, hf.typeName, count)
	}
	return hf.readPage(pageNo)
}

func (hf *HeapFile) writePageInternal(pageNo int64, pg *page.Page) error {
	if err := hf.writePage(pageNo, pg); err != nil {
		return err
	}
	hf.pageLogger(pageNo).Debug("wrote page",
		"records", pg.Header.RecordCount,
		"bitmap", pg.Header.Bitmap.String(),
	)
	return nil
}

func (hf *HeapFile) writeRecordInternal(payload []byte) (types.RecordID, error) {
	pg, pageNo, slot, err := hf.findFreeSlot()
	if err != nil {
		return types.RecordID{}, err
	}

	// PutRecord works on the page's own slot; the caller's payload is
	// copied, never modified.
	pg.PutRecord(slot, payload)

	if err := hf.writePage(pageNo, pg); err != nil {
		return types.RecordID{}, err
	}

	rid := types.RecordID{PageNo: pageNo, Slot: slot}
	hf.pageLogger(pageNo).Debug("wrote record",
		"slot", slot,
		"records", pg.Header.RecordCount,
		"bitmap", pg.Header.Bitmap.String(),
	)
	return rid, nil
}

func (hf *HeapFile) deleteRecordInternal(pageNo int64, slot int) (bool, error) {
	pg, err := hf.readPageInternal(pageNo)
	if err != nil {
		if errors.Is(err, types.ErrPageNotFound) {
			return false, nil
		}
		return false, err
	}
	if !pg.IsLive(slot) {
		return false, nil
	}

	pg.ClearRecord(slot)
	if err := hf.writePage(pageNo, pg); err != nil {
		return false, err
	}

	hf.pageLogger(pageNo).Debug("deleted record",
		"slot", slot,
		"records", pg.Header.RecordCount,
		"bitmap", pg.Header.Bitmap.String(),
	)
	return true, nil
}

func (hf *HeapFile) readRecordInternal(pageNo int64, slot int) ([]byte, error) {
	pg, err := hf.readPageInternal(pageNo)
	if err != nil {
		if errors.Is(err, types.ErrPageNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !pg.IsLive(slot) {
		return nil, nil
	}
	payload := make([]byte, types.SlotSize)
	copy(payload, pg.Slot(slot))
	return payload, nil
}
