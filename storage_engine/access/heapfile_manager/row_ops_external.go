package heapfile

import (
	page "DuneArchive/storage_engine/page"
	"DuneArchive/types"
)

/* this file contains external functions for page and record operations on the heapfile, they lock the heap file before calling their internal function */

// ReadPage returns page pageNo of typeName's heap file. A heap file that does
// not exist yet is created holding one empty page 0.
func (hfm *HeapFileManager) ReadPage(typeName string, pageNo int64) (*page.Page, error) {
	if err := checkPageNo(pageNo); err != nil {
		return nil, err
	}
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return nil, err
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	if err := hf.ensureExists(); err != nil {
		return nil, err
	}
	return hf.readPageInternal(pageNo)
}

// WritePage overwrites page pageNo with header and data. data is the slot
// area and is zero-padded to its full size.
func (hfm *HeapFileManager) WritePage(typeName string, pageNo int64, header page.Header, data []byte) error {
	if err := checkPageNo(pageNo); err != nil {
		return err
	}
	if int64(header.PageNo) != pageNo {
		return types.Errorf(types.ErrInvalidPageNumber, "header page number %d does not match page %d", header.PageNo, pageNo)
	}
	if len(data) > types.PageDataSize {
		return types.Errorf(types.ErrPageTooLarge, "page data is %d bytes, max %d", len(data), types.PageDataSize)
	}
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return err
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	pg := page.New(header.PageNo)
	pg.Header = header
	copy(pg.Data, data)
	return hf.writePageInternal(pageNo, pg)
}

// AllocatePage appends an empty page and returns its number. Page numbers
// are never reused.
func (hfm *HeapFileManager) AllocatePage(typeName string) (int64, error) {
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return 0, err
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	pageNo, err := hf.allocatePage()
	if err != nil {
		return 0, err
	}
	hf.pageLogger(pageNo).Debug("allocated page")
	return pageNo, nil
}

// WriteRecord stores payload in the first free slot of the heap file.
func (hfm *HeapFileManager) WriteRecord(typeName string, payload []byte) (types.RecordID, error) {
	if len(payload) > types.SlotSize {
		return types.RecordID{}, types.Errorf(types.ErrRecordTooLarge, "record is %d bytes, slot size is %d", len(payload), types.SlotSize)
	}
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return types.RecordID{}, err
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	return hf.writeRecordInternal(payload)
}

// DeleteRecord marks the record at (pageNo, slot) dead. It reports false if
// the page does not exist or the slot holds no live record.
func (hfm *HeapFileManager) DeleteRecord(typeName string, pageNo int64, slot int) (bool, error) {
	if err := checkPageNo(pageNo); err != nil {
		return false, err
	}
	if err := checkSlot(slot); err != nil {
		return false, err
	}
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return false, err
	}

	hf.mu.Lock()
	defer hf.mu.Unlock()

	return hf.deleteRecordInternal(pageNo, slot)
}

// ReadRecord returns a copy of the slot payload at (pageNo, slot), or nil if
// the slot holds no live record.
func (hfm *HeapFileManager) ReadRecord(typeName string, pageNo int64, slot int) ([]byte, error) {
	if err := checkPageNo(pageNo); err != nil {
		return nil, err
	}
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return nil, err
	}

	hf.mu.RLock()
	defer hf.mu.RUnlock()

	return hf.readRecordInternal(pageNo, slot)
}
