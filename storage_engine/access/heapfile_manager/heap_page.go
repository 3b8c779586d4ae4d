package heapfile

import (
	page "DuneArchive/storage_engine/page"
	"DuneArchive/types"
	"errors"
	"io"
	"os"
)

/*
Page-level file I/O for a single heap file. None of these functions take
hf.mu; the row operations in row_ops_external.go do.

Page n lives at byte offset n * PageSize. The page count is the file size
divided by PageSize; a torn trailing fragment is not a page and is
overwritten by the next allocation.
*/

func (hf *HeapFile) fileSize() (int64, error) {
	stat, err := os.Stat(hf.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, types.Errorf(types.ErrPageIO, "stat %s: %w", hf.filePath, err)
	}
	return stat.Size(), nil
}

func (hf *HeapFile) pageCount() (int64, error) {
	size, err := hf.fileSize()
	if err != nil {
		return 0, err
	}
	return size / types.PageSize, nil
}

// ensureExists creates the heap file holding one empty page 0 if the file
// is not there yet.
func (hf *HeapFile) ensureExists() error {
	if _, err := os.Stat(hf.filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return types.Errorf(types.ErrPageIO, "stat %s: %w", hf.filePath, err)
	}

	file, err := os.OpenFile(hf.filePath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return types.Errorf(types.ErrPageIO, "failed to create heap file %s: %w", hf.filePath, err)
	}
	defer file.Close()

	if _, err := file.WriteAt(page.New(0).Encode(), 0); err != nil {
		return types.Errorf(types.ErrPageIO, "failed to initialise page 0: %w", err)
	}
	return nil
}

// readPage reads page pageNo. The caller has validated pageNo >= 0.
func (hf *HeapFile) readPage(pageNo int64) (*page.Page, error) {
	file, err := os.Open(hf.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.Errorf(types.ErrPageNotFound, "page %d not found: heap file %s does not exist", pageNo, hf.typeName)
		}
		return nil, types.Errorf(types.ErrPageIO, "failed to open heap file: %w", err)
	}
	defer file.Close()

	raw := make([]byte, types.PageSize)
	n, err := file.ReadAt(raw, pageNo*types.PageSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, types.Errorf(types.ErrPageIO, "failed to read page %d: %w", pageNo, err)
	}
	// The header alone decides whether the page exists; a page cut short
	// after its header reads back with a zeroed tail.
	if n < types.PageHeaderSize {
		return nil, types.Errorf(types.ErrPageNotFound, "page %d not found", pageNo)
	}
	return page.Decode(raw), nil
}

// writePage overwrites page pageNo with the full encoding of pg.
func (hf *HeapFile) writePage(pageNo int64, pg *page.Page) error {
	file, err := os.OpenFile(hf.filePath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return types.Errorf(types.ErrPageIO, "failed to open heap file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteAt(pg.Encode(), pageNo*types.PageSize); err != nil {
		return types.Errorf(types.ErrPageIO, "failed to write page %d: %w", pageNo, err)
	}
	return nil
}

// allocatePage appends an empty page after the last whole page.
func (hf *HeapFile) allocatePage() (int64, error) {
	pageNo, err := hf.pageCount()
	if err != nil {
		return 0, err
	}
	if pageNo > maxPageNo {
		return 0, types.Errorf(types.ErrInvalidPageNumber, "heap file %s is full (%d pages)", hf.typeName, pageNo)
	}
	if err := hf.writePage(pageNo, page.New(uint32(pageNo))); err != nil {
		return 0, err
	}
	return pageNo, nil
}
