package heapfile

import (
	"DuneArchive/types"
	"fmt"
	"os"
	"path/filepath"
)

/*
This file is the start of the heapfile manager.

Every record type owns exactly one heap file, <baseDir>/<type>.bin. The file
is a contiguous run of fixed-size pages numbered from 0; pages are appended,
never removed or compacted. The manager holds no file handles and no page
cache between calls: each operation opens the file, does its I/O, and closes
it again, so every read observes the latest write.
*/

// NewHeapFileManager creates a new heap file manager rooted at baseDir.
func NewHeapFileManager(baseDir string) (*HeapFileManager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, types.Errorf(types.ErrPageIO, "failed to create heap directory: %w", err)
	}
	return &HeapFileManager{
		baseDir: baseDir,
		files:   make(map[string]*HeapFile),
	}, nil
}

func (hfm *HeapFileManager) BaseDir() string {
	return hfm.baseDir
}

// heapFile returns the HeapFile for typeName, registering it on first use.
func (hfm *HeapFileManager) heapFile(typeName string) (*HeapFile, error) {
	if err := checkTypeName(typeName); err != nil {
		return nil, err
	}

	hfm.mu.Lock()
	defer hfm.mu.Unlock()

	if hf, exists := hfm.files[typeName]; exists {
		return hf, nil
	}
	hf := &HeapFile{
		typeName: typeName,
		filePath: filepath.Join(hfm.baseDir, typeName+".bin"),
	}
	hfm.files[typeName] = hf
	return hf, nil
}

// FilePath returns where the heap file of typeName lives on disk.
func (hfm *HeapFileManager) FilePath(typeName string) (string, error) {
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return "", err
	}
	return hf.filePath, nil
}

// Exists reports whether the heap file of typeName has been created.
func (hfm *HeapFileManager) Exists(typeName string) (bool, error) {
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(hf.filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, types.Errorf(types.ErrPageIO, "stat %s: %w", hf.filePath, err)
}

// PageCount returns the number of whole pages in the heap file; a missing
// file has none.
func (hfm *HeapFileManager) PageCount(typeName string) (int64, error) {
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return 0, err
	}
	hf.mu.RLock()
	defer hf.mu.RUnlock()
	return hf.pageCount()
}

// FileSize returns the size of the heap file in bytes; a missing file is 0.
func (hfm *HeapFileManager) FileSize(typeName string) (int64, error) {
	hf, err := hfm.heapFile(typeName)
	if err != nil {
		return 0, err
	}
	hf.mu.RLock()
	defer hf.mu.RUnlock()
	return hf.fileSize()
}

func (hf *HeapFile) String() string {
	return fmt.Sprintf("heapfile(%s)", hf.filePath)
}
