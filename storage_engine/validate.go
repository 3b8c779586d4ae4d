package storageengine

import (
	"DuneArchive/types"
	"strings"
)

// Validate checks values against fields before anything is encoded. It is
// the only place where an over-long string or an out-of-range integer is
// rejected; the codec would truncate.
func (se *StorageEngine) Validate(fields []types.Field, values []any) error {
	if len(fields) != len(values) {
		return types.Errorf(types.ErrFieldCountMismatch, "expected %d values, got %d", len(fields), len(values))
	}

	for i, field := range fields {
		switch field.Type {
		case types.FieldInt:
			if _, err := types.ToInt64(values[i]); err != nil {
				return types.Errorf(types.ErrFieldConstraint, "field %s: %v must be an integer in [-2^63, 2^63-1]", field.Name, values[i])
			}

		case types.FieldString:
			s, err := types.ToString(values[i])
			if err != nil {
				return types.Errorf(types.ErrFieldTypeError, "field %s: %w", field.Name, err)
			}
			if len(s) > field.Width {
				return types.Errorf(types.ErrFieldConstraint, "field %s: value is %d bytes, max %d", field.Name, len(s), field.Width)
			}
			if strings.ContainsRune(s, 0) {
				return types.Errorf(types.ErrFieldConstraint, "field %s: value contains a NUL byte", field.Name)
			}

		default:
			return types.Errorf(types.ErrFieldTypeError, "field %s: unsupported type %s", field.Name, field.Type)
		}
	}
	return nil
}
