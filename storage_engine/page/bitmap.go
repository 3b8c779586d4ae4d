package page

import (
	"DuneArchive/types"
	"fmt"
	"math/bits"
	"strings"
)

// Bitmap is the per-page slot occupancy set. Bit i is set iff slot i holds
// a live record.
type Bitmap uint16

func (b Bitmap) IsSet(i int) bool {
	if i < 0 || i >= types.MaxSlots {
		return false
	}
	return b&(1<<uint(i)) != 0
}

func (b Bitmap) Set(i int) Bitmap {
	return b | (1 << uint(i))
}

func (b Bitmap) Clear(i int) Bitmap {
	return b &^ (1 << uint(i))
}

// Count is the population count of the bitmap.
func (b Bitmap) Count() int {
	return bits.OnesCount16(uint16(b))
}

// FirstFree returns the lowest clear bit below limit.
func (b Bitmap) FirstFree(limit int) (int, bool) {
	for i := 0; i < limit && i < types.MaxSlots; i++ {
		if !b.IsSet(i) {
			return i, true
		}
	}
	return -1, false
}

// Overflow returns the set bits at or above limit; a well-formed page never
// has any.
func (b Bitmap) Overflow(limit int) Bitmap {
	return b &^ Bitmap(uint16(1)<<uint(limit)-1)
}

// String renders the first SlotsPerPage bits, slot 0 first.
func (b Bitmap) String() string {
	var sb strings.Builder
	for i := 0; i < types.SlotsPerPage; i++ {
		if b.IsSet(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('.')
		}
	}
	if extra := b.Overflow(types.SlotsPerPage); extra != 0 {
		fmt.Fprintf(&sb, "+%#x", uint16(extra))
	}
	return sb.String()
}
