package heapfile

import (
	"DuneArchive/types"
	"math"
	"strings"
)

// Page numbers are stored in a 4-byte header field.
const maxPageNo = math.MaxUint32

func checkPageNo(pageNo int64) error {
	if pageNo < 0 || pageNo > maxPageNo {
		return types.Errorf(types.ErrInvalidPageNumber, "invalid page number: %d", pageNo)
	}
	return nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= types.SlotsPerPage {
		return types.Errorf(types.ErrInvalidSlotNumber, "invalid slot number: %d (slots per page: %d)", slot, types.SlotsPerPage)
	}
	return nil
}

// checkTypeName rejects names that cannot safely become a file name.
func checkTypeName(typeName string) error {
	if typeName == "" || typeName == "." || typeName == ".." ||
		strings.ContainsAny(typeName, `/\`) || strings.ContainsRune(typeName, 0) {
		return types.Errorf(types.ErrPageIO, "invalid heap file name %q", typeName)
	}
	return nil
}
