package heapfile

import (
	"DuneArchive/logging"
	page "DuneArchive/storage_engine/page"
	"log/slog"
)

/*
This file contains helpers related to HeapFile
*/

func (hf *HeapFile) pageLogger(pageNo int64) *slog.Logger {
	return logging.WithPage("heap", hf.typeName, pageNo)
}

// findFreeSlot returns the first page (ascending) with a free slot, and
// that slot. Without a free slot anywhere a fresh page is appended and slot 0
// of it is returned.
func (hf *HeapFile) findFreeSlot() (*page.Page, int64, int, error) {
	totalPages, err := hf.pageCount()
	if err != nil {
		return nil, 0, 0, err
	}

	for pageNo := int64(0); pageNo < totalPages; pageNo++ {
		pg, err := hf.readPage(pageNo)
		if err != nil {
			return nil, 0, 0, err
		}
		if slot, ok := pg.FreeSlot(); ok {
			return pg, pageNo, slot, nil
		}
	}

	pageNo, err := hf.allocatePage()
	if err != nil {
		return nil, 0, 0, err
	}
	hf.pageLogger(pageNo).Debug("allocated page")
	return page.New(uint32(pageNo)), pageNo, 0, nil
}
