package storageengine

import (
	"DuneArchive/types"
	"bytes"
	"encoding/binary"
)

/*
Record codec. A record is stored in one slot:

	[validity:1][field 0][field 1]...[field n-1][zero padding to SlotSize]

Every field occupies its declared width, so the offset of field i is fixed by
the type definition and a key can be compared without decoding the record.
*/

// EncodeRecord builds the slot payload for values, which must be in field
// order. The payload is always exactly SlotSize bytes.
func EncodeRecord(fields []types.Field, values []any) ([]byte, error) {
	if len(fields) != len(values) {
		return nil, types.Errorf(types.ErrFieldCountMismatch, "expected %d values, got %d", len(fields), len(values))
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(types.RecordLive)

	for i, field := range fields {
		b, err := ValueToBytes(values[i], field)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	if buf.Len() > types.SlotSize {
		return nil, types.Errorf(types.ErrRecordTooLargeForSlot, "record is %d bytes, slot size is %d", buf.Len(), types.SlotSize)
	}

	payload := make([]byte, types.SlotSize)
	copy(payload, buf.Bytes())
	return payload, nil
}

// DecodeRecord turns a live slot payload back into values.
func DecodeRecord(fields []types.Field, payload []byte) ([]any, error) {
	if len(payload) != types.SlotSize {
		return nil, types.Errorf(types.ErrInvalidRecordSize, "payload is %d bytes, want %d", len(payload), types.SlotSize)
	}
	if payload[0] != types.RecordLive {
		return nil, types.Errorf(types.ErrInvalidRecord, "validity byte is %d", payload[0])
	}

	out := make([]any, len(fields))
	offset := 1
	for i, field := range fields {
		if offset+field.Width > len(payload) {
			return nil, types.Errorf(types.ErrInvalidRecordSize, "field %s at offset %d overruns the slot", field.Name, offset)
		}
		val, err := BytesToValue(payload[offset:offset+field.Width], field)
		if err != nil {
			return nil, err
		}
		out[i] = val
		offset += field.Width
	}
	return out, nil
}

// FieldOffset is the byte offset of fields[index] within a slot payload.
func FieldOffset(fields []types.Field, index int) (int, error) {
	if index < 0 || index >= len(fields) {
		return 0, types.Errorf(types.ErrInvalidFieldIndex, "field index %d out of range 0..%d", index, len(fields)-1)
	}
	offset := 1
	for _, f := range fields[:index] {
		offset += f.Width
	}
	return offset, nil
}

// CompareKey reports whether the live record in payload has search as the
// value of keyField. Only the key bytes are decoded.
func CompareKey(payload []byte, search any, keyField types.Field, keyOffset int) (bool, error) {
	if len(payload) == 0 || payload[0] != types.RecordLive {
		return false, nil
	}
	if keyOffset < 1 || keyOffset+keyField.Width > len(payload) {
		return false, types.Errorf(types.ErrInvalidRecordSize, "key field %s at offset %d overruns the payload", keyField.Name, keyOffset)
	}
	raw := payload[keyOffset : keyOffset+keyField.Width]

	switch keyField.Type {
	case types.FieldInt:
		want, err := types.ToInt64(search)
		if err != nil {
			return false, types.Errorf(types.ErrInvalidKeyValue, "key %s: %w", keyField.Name, err)
		}
		return int64(binary.BigEndian.Uint64(raw)) == want, nil

	case types.FieldString:
		want, err := types.ToString(search)
		if err != nil {
			return false, types.Errorf(types.ErrInvalidKeyValue, "key %s: %w", keyField.Name, err)
		}
		got, err := BytesToValue(raw, keyField)
		if err != nil {
			return false, err
		}
		return got.(string) == want, nil
	}

	return false, types.Errorf(types.ErrFieldTypeError, "key %s: unsupported type %s", keyField.Name, keyField.Type)
}
