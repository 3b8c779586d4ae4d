package storageengine

import (
	"DuneArchive/logging"
	"DuneArchive/types"
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// ValueToBytes encodes one value into exactly field.Width bytes.
//
// Strings longer than the field are cut at the last rune boundary that fits;
// Validate rejects such values before they ever get here, so a truncation is
// logged as a warning.
func ValueToBytes(val any, field types.Field) ([]byte, error) {
	buf := make([]byte, field.Width)

	switch field.Type {
	case types.FieldInt:
		i, err := types.ToInt64(val)
		if err != nil {
			return nil, types.Errorf(types.ErrFieldTypeError, "field %s: %w", field.Name, err)
		}
		if field.Width != types.IntWidth {
			return nil, types.Errorf(types.ErrFieldTypeError, "field %s: int width is %d, want %d", field.Name, field.Width, types.IntWidth)
		}
		binary.BigEndian.PutUint64(buf, uint64(i))
		return buf, nil

	case types.FieldString:
		s, err := types.ToString(val)
		if err != nil {
			return nil, types.Errorf(types.ErrFieldTypeError, "field %s: %w", field.Name, err)
		}
		if len(s) > field.Width {
			cut := truncateUTF8(s, field.Width)
			logging.WithComponent("codec").Warn("string truncated to field width",
				"field", field.Name,
				"width", field.Width,
				"len", len(s),
				"kept", len(cut),
			)
			s = cut
		}
		copy(buf, s)
		return buf, nil
	}

	return nil, types.Errorf(types.ErrFieldTypeError, "field %s: unsupported type %s", field.Name, field.Type)
}

// BytesToValue decodes one field from b, which must hold at least
// field.Width bytes. Ints come back as int64 and strings as string.
func BytesToValue(b []byte, field types.Field) (any, error) {
	if len(b) < field.Width {
		return nil, types.Errorf(types.ErrInvalidRecordSize, "field %s: need %d bytes, have %d", field.Name, field.Width, len(b))
	}

	switch field.Type {
	case types.FieldInt:
		return int64(binary.BigEndian.Uint64(b[:types.IntWidth])), nil

	case types.FieldString:
		raw := bytes.TrimRight(b[:field.Width], "\x00")
		if !utf8.Valid(raw) {
			return nil, types.Errorf(types.ErrFieldTypeError, "field %s: invalid UTF-8", field.Name)
		}
		return string(raw), nil
	}

	return nil, types.Errorf(types.ErrFieldTypeError, "field %s: unsupported type %s", field.Name, field.Type)
}

// truncateUTF8 returns the longest prefix of s that is at most n bytes and
// does not split a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
