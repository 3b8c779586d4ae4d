package heapfile

import (
	page "DuneArchive/storage_engine/page"
	"DuneArchive/types"
	"errors"
)

// PageIterator walks the pages of one heap file in ascending page order. It
// reads one page per Next call and stops at the first page that does not
// exist. It never creates the heap file.
//
//	it := hfm.IteratePages("Human")
//	for it.Next() {
//		pg := it.Page()
//	}
//	if err := it.Err(); err != nil { ... }
type PageIterator struct {
	hfm      *HeapFileManager
	typeName string
	next     int64
	current  *page.Page
	err      error
	done     bool
}

// IteratePages returns an iterator over typeName's pages starting at page 0.
// Each call returns a fresh iterator.
func (hfm *HeapFileManager) IteratePages(typeName string) *PageIterator {
	return &PageIterator{hfm: hfm, typeName: typeName}
}

func (it *PageIterator) Next() bool {
	if it.done {
		return false
	}

	pg, err := it.fetch(it.next)
	if err != nil {
		it.done = true
		it.current = nil
		if !errors.Is(err, types.ErrPageNotFound) {
			it.err = err
		}
		return false
	}

	it.current = pg
	it.next++
	return true
}

// Page returns the page loaded by the last successful Next.
func (it *PageIterator) Page() *page.Page {
	return it.current
}

// PageNo returns the number of the page returned by Page.
func (it *PageIterator) PageNo() int64 {
	return it.next - 1
}

func (it *PageIterator) Err() error {
	return it.err
}

func (it *PageIterator) fetch(pageNo int64) (*page.Page, error) {
	hf, err := it.hfm.heapFile(it.typeName)
	if err != nil {
		return nil, err
	}

	hf.mu.RLock()
	defer hf.mu.RUnlock()

	return hf.readPageInternal(pageNo)
}
