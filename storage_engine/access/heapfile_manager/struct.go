package heapfile

import (
	"sync"
)

// HeapFile is the heap file of one record type. The OS file is opened and
// closed inside every operation; mu only serialises this process's
// read-modify-write cycles on it.
type HeapFile struct {
	typeName string
	filePath string
	mu       sync.RWMutex
}

// HeapFileManager manages all heap files, one per type name
type HeapFileManager struct {
	baseDir string
	files   map[string]*HeapFile
	mu      sync.Mutex
}
