package storageengine

import (
	"DuneArchive/types"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// InspectTypeTo writes a human-readable dump of typeName's heap file to w:
// the schema with field offsets, then every page header followed by the
// decoded contents of its live slots.
func (se *StorageEngine) InspectTypeTo(w io.Writer, typeName string) error {
	layout, err := se.layout(typeName)
	if err != nil {
		return err
	}
	path, err := se.HeapManager.FilePath(typeName)
	if err != nil {
		return err
	}
	size, err := se.HeapManager.FileSize(typeName)
	if err != nil {
		return err
	}

	p := func(format string, args ...any) { fmt.Fprintf(w, format, args...) }
	pln := func(s string) { fmt.Fprintln(w, s) }

	p("Heap file: %s (%s)\n", path, humanize.IBytes(uint64(size)))
	p("  Type %s, record width %d of %d, key %s\n",
		layout.Def.Name, layout.Def.RecordWidth(), types.SlotSize, layout.KeyField().Name)
	for i, f := range layout.Def.Fields {
		p("    @%-3d %-16s %s(%d)\n", layout.Offsets[i], f.Name, f.Type.Tag(), f.Width)
	}
	if size == 0 {
		pln("  (no heap file yet)")
		return nil
	}

	pln("\n  Pages:")
	pln("  ---")

	it := se.HeapManager.IteratePages(typeName)
	for it.Next() {
		pg := it.Page()
		p("  [page %d] header.page=%d records=%d bitmap=%s\n",
			it.PageNo(), pg.Header.PageNo, pg.Header.RecordCount, pg.Header.Bitmap)
		for _, slot := range pg.LiveSlots() {
			values, err := DecodeRecord(layout.Def.Fields, pg.Slot(slot))
			if err != nil {
				p("    slot %d: decode error: %v\n", slot, err)
				continue
			}
			cells := make([]string, len(values))
			for i, v := range values {
				cells[i] = fmt.Sprintf("%s=%v", layout.Def.Fields[i].Name, v)
			}
			p("    slot %d: %s\n", slot, strings.Join(cells, " "))
		}
	}
	return it.Err()
}
