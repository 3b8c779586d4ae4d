package types

import (
	"fmt"
	"strings"
)

// RecordID points to a specific slot in a type's heap file
type RecordID struct {
	PageNo int64 `json:"page_no"`
	Slot   int   `json:"slot"`
}

func (r RecordID) String() string {
	return fmt.Sprintf("(%d,%d)", r.PageNo, r.Slot)
}

// Record is a decoded record together with the slot it was read from.
type Record struct {
	ID     RecordID
	Values []any
}

// Join renders the values the way search results are written out:
// space-separated, in schema order.
func (r Record) Join() string {
	cells := make([]string, len(r.Values))
	for i, v := range r.Values {
		cells[i] = fmt.Sprint(v)
	}
	return strings.Join(cells, " ")
}
