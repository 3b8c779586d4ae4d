package types

const (
	PageHeaderSize = 10  // page number (4B) + live count (4B) + slot bitmap (2B)
	SlotsPerPage   = 10  // slots in use per page
	MaxSlots       = 16  // width of the slot bitmap
	SlotSize       = 128 // bytes per slot, validity byte included
	PageSize       = PageHeaderSize + SlotsPerPage*SlotSize
	PageDataSize   = PageSize - PageHeaderSize

	RecordLive byte = 1
	RecordDead byte = 0
)
