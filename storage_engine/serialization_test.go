package storageengine

import (
	"DuneArchive/types"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humanFields() []types.Field {
	return []types.Field{
		{Name: "name", Type: types.FieldString, Width: 32},
		{Name: "age", Type: types.FieldInt, Width: 8},
		{Name: "city", Type: types.FieldString, Width: 32},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   []any
	}{
		{"plain", []any{"Alice", "30", "Arrakeen"}, []any{"Alice", int64(30), "Arrakeen"}},
		{"native ints", []any{"Bob", 42, "x"}, []any{"Bob", int64(42), "x"}},
		{"max int", []any{"a", int64(math.MaxInt64), ""}, []any{"a", int64(math.MaxInt64), ""}},
		{"min int", []any{"a", "-9223372036854775808", ""}, []any{"a", int64(math.MinInt64), ""}},
		{"exact width", []any{strings.Repeat("z", 32), "0", "é"}, []any{strings.Repeat("z", 32), int64(0), "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := EncodeRecord(humanFields(), tt.values)
			require.NoError(t, err)
			require.Len(t, payload, types.SlotSize)
			assert.Equal(t, byte(types.RecordLive), payload[0])

			got, err := DecodeRecord(humanFields(), payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRecord_Layout(t *testing.T) {
	payload, err := EncodeRecord(humanFields(), []any{"Al", -2, "C"})
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 'A', 'l', 0}, payload[:4])
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}, payload[33:41])
	assert.Equal(t, byte('C'), payload[41])
	assert.Equal(t, make([]byte, types.SlotSize-73), payload[73:])
}

func TestEncodeRecord_Errors(t *testing.T) {
	_, err := EncodeRecord(humanFields(), []any{"a", 1})
	assert.ErrorIs(t, err, types.ErrFieldCountMismatch)

	_, err = EncodeRecord(humanFields(), []any{"a", "old", "b"})
	assert.ErrorIs(t, err, types.ErrFieldTypeError)

	tooWide := []types.Field{
		{Name: "a", Type: types.FieldString, Width: 100},
		{Name: "b", Type: types.FieldString, Width: 100},
	}
	_, err = EncodeRecord(tooWide, []any{"x", "y"})
	assert.ErrorIs(t, err, types.ErrRecordTooLargeForSlot)
}

func TestEncodeRecord_TruncatesAtRuneBoundary(t *testing.T) {
	fields := []types.Field{{Name: "s", Type: types.FieldString, Width: 4}}

	payload, err := EncodeRecord(fields, []any{"abcdef"})
	require.NoError(t, err)
	got, err := DecodeRecord(fields, payload)
	require.NoError(t, err)
	assert.Equal(t, []any{"abcd"}, got)

	// "aé" is 3 bytes; "aéé" is 5, and the cut must not split the second é.
	payload, err = EncodeRecord(fields, []any{"aéé"})
	require.NoError(t, err)
	got, err = DecodeRecord(fields, payload)
	require.NoError(t, err)
	assert.Equal(t, []any{"aé"}, got)
}

func TestDecodeRecord_Errors(t *testing.T) {
	_, err := DecodeRecord(humanFields(), make([]byte, 10))
	assert.ErrorIs(t, err, types.ErrInvalidRecordSize)

	_, err = DecodeRecord(humanFields(), make([]byte, types.SlotSize))
	assert.ErrorIs(t, err, types.ErrInvalidRecord)

	payload, err := EncodeRecord(humanFields(), []any{"ok", 1, "ok"})
	require.NoError(t, err)
	payload[1] = 0xff
	_, err = DecodeRecord(humanFields(), payload)
	assert.ErrorIs(t, err, types.ErrFieldTypeError)
}

func TestFieldOffset(t *testing.T) {
	for i, want := range []int{1, 33, 41} {
		got, err := FieldOffset(humanFields(), i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := FieldOffset(humanFields(), 3)
	assert.ErrorIs(t, err, types.ErrInvalidFieldIndex)
	_, err = FieldOffset(humanFields(), -1)
	assert.ErrorIs(t, err, types.ErrInvalidFieldIndex)
}

func TestCompareKey(t *testing.T) {
	fields := humanFields()
	payload, err := EncodeRecord(fields, []any{"Alice", 30, "Arrakeen"})
	require.NoError(t, err)

	ok, err := CompareKey(payload, "Alice", fields[0], 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CompareKey(payload, "Alic", fields[0], 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CompareKey(payload, "30", fields[1], 33)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CompareKey(payload, int64(31), fields[1], 33)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CompareKey(payload, "thirty", fields[1], 33)
	assert.ErrorIs(t, err, types.ErrInvalidKeyValue)

	payload[0] = types.RecordDead
	ok, err = CompareKey(payload, "Alice", fields[0], 1)
	require.NoError(t, err)
	assert.False(t, ok, "dead record never matches")
}
