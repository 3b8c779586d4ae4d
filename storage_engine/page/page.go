package page

import (
	"DuneArchive/types"
	"encoding/binary"
)

/*
This package owns the byte layout of a heap page. The heap file manager reads
and writes whole pages; everything that interprets those bytes goes through
here so that no caller does its own offset arithmetic.

Heap page binary layout (all values big-endian):

	Offset  Size  Field
	──────────────────────────────────────────────
	0       4     PageNo       uint32
	4       4     RecordCount  uint32  live records, == Bitmap.Count()
	8       2     Bitmap       uint16  bit i set iff slot i is live
	──────────────────────────────────────────────
	10            slot 0 .. slot SlotsPerPage-1, SlotSize bytes each

A slot begins with the validity byte (1 live, 0 dead) followed by the
record's fields in schema order.
*/

const (
	offPageNo      = 0
	offRecordCount = 4
	offBitmap      = 8
)

// Header is the fixed header at the start of every heap page.
type Header struct {
	PageNo      uint32
	RecordCount uint32
	Bitmap      Bitmap
}

// Page is one page of a heap file: its header and the slot array that
// follows it.
type Page struct {
	Header Header
	Data   []byte // len == types.PageDataSize
}

// New returns an empty page: no live slots, zeroed slot array.
func New(pageNo uint32) *Page {
	return &Page{
		Header: Header{PageNo: pageNo},
		Data:   make([]byte, types.PageDataSize),
	}
}

// ReadHeader decodes the header from the first PageHeaderSize bytes of buf.
func ReadHeader(buf []byte) Header {
	return Header{
		PageNo:      binary.BigEndian.Uint32(buf[offPageNo:]),
		RecordCount: binary.BigEndian.Uint32(buf[offRecordCount:]),
		Bitmap:      Bitmap(binary.BigEndian.Uint16(buf[offBitmap:])),
	}
}

// WriteHeader encodes h into the first PageHeaderSize bytes of buf.
func WriteHeader(buf []byte, h Header) {
	binary.BigEndian.PutUint32(buf[offPageNo:], h.PageNo)
	binary.BigEndian.PutUint32(buf[offRecordCount:], h.RecordCount)
	binary.BigEndian.PutUint16(buf[offBitmap:], uint16(h.Bitmap))
}

// Decode splits a raw page into header and a private copy of the slot array.
func Decode(raw []byte) *Page {
	p := &Page{
		Header: ReadHeader(raw),
		Data:   make([]byte, types.PageDataSize),
	}
	copy(p.Data, raw[types.PageHeaderSize:])
	return p
}

// Encode returns the full on-disk bytes of the page. A short Data is
// zero-padded to the slot array size.
func (p *Page) Encode() []byte {
	buf := make([]byte, types.PageSize)
	WriteHeader(buf, p.Header)
	copy(buf[types.PageHeaderSize:], p.Data)
	return buf
}

// SlotOffset is the offset of slot i within Data.
func SlotOffset(i int) int {
	return i * types.SlotSize
}

// Slot returns the bytes of slot i. The slice aliases Data.
func (p *Page) Slot(i int) []byte {
	off := SlotOffset(i)
	return p.Data[off : off+types.SlotSize]
}

// IsLive reports whether slot i is marked live in the bitmap.
func (p *Page) IsLive(i int) bool {
	return p.Header.Bitmap.IsSet(i)
}

// LiveSlots returns the indices of all live slots in ascending order.
func (p *Page) LiveSlots() []int {
	var live []int
	for i := 0; i < types.SlotsPerPage; i++ {
		if p.IsLive(i) {
			live = append(live, i)
		}
	}
	return live
}

// FreeSlot returns the lowest free slot on the page.
func (p *Page) FreeSlot() (int, bool) {
	return p.Header.Bitmap.FirstFree(types.SlotsPerPage)
}

// PutRecord copies payload into slot i, marks it live and bumps the count.
// The slot is zeroed first so a shorter payload never leaves stale bytes
// behind.
func (p *Page) PutRecord(i int, payload []byte) {
	slot := p.Slot(i)
	clear(slot)
	copy(slot, payload)
	slot[0] = types.RecordLive
	p.Header.Bitmap = p.Header.Bitmap.Set(i)
	p.Header.RecordCount = uint32(p.Header.Bitmap.Count())
}

// ClearRecord marks slot i dead: validity byte zeroed, bit cleared, count
// decremented.
func (p *Page) ClearRecord(i int) {
	p.Slot(i)[0] = types.RecordDead
	p.Header.Bitmap = p.Header.Bitmap.Clear(i)
	p.Header.RecordCount = uint32(p.Header.Bitmap.Count())
}
