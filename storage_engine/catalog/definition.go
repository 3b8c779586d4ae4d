package catalog

import (
	types "DuneArchive/types"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Characters with a meaning in the catalog file or in heap file paths.
const reservedChars = `|,:/\`

func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name is empty", kind)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%s name %q is not allowed", kind, name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(reservedChars, r) {
			return fmt.Errorf("%s name %q contains %q", kind, name, r)
		}
	}
	return nil
}

// buildDefinition checks a caller-supplied type and assigns field widths.
// pkIndex is 1-based.
func buildDefinition(name string, fieldCount, pkIndex int, specs []types.FieldSpec, stringWidth int) (types.TypeDefinition, error) {
	def, err := newDefinition(name, fieldCount, pkIndex, specs, stringWidth)
	if err != nil {
		return types.TypeDefinition{}, types.Errorf(types.ErrInvalidDefinition, "type %s: %w", name, err)
	}
	return def, nil
}

func newDefinition(name string, fieldCount, pkIndex int, specs []types.FieldSpec, stringWidth int) (types.TypeDefinition, error) {
	if err := checkName("type", name); err != nil {
		return types.TypeDefinition{}, err
	}
	if fieldCount <= 0 {
		return types.TypeDefinition{}, fmt.Errorf("field count must be positive, got %d", fieldCount)
	}
	if fieldCount != len(specs) {
		return types.TypeDefinition{}, fmt.Errorf("declared %d fields but %d given", fieldCount, len(specs))
	}
	if pkIndex < 1 || pkIndex > fieldCount {
		return types.TypeDefinition{}, fmt.Errorf("primary key index %d out of range 1..%d", pkIndex, fieldCount)
	}

	fields := make([]types.Field, len(specs))
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if err := checkName("field", spec.Name); err != nil {
			return types.TypeDefinition{}, err
		}
		if seen[spec.Name] {
			return types.TypeDefinition{}, fmt.Errorf("duplicate field name %s", spec.Name)
		}
		seen[spec.Name] = true

		ft, err := types.ParseFieldType(spec.TypeTag)
		if err != nil {
			return types.TypeDefinition{}, fmt.Errorf("field %s: unsupported type %q", spec.Name, spec.TypeTag)
		}
		width := types.IntWidth
		if ft == types.FieldString {
			width = stringWidth
		}
		fields[i] = types.Field{Name: spec.Name, Type: ft, Width: width}
	}

	def := types.TypeDefinition{Name: name, Fields: fields, PrimaryKey: pkIndex - 1}
	if w := def.RecordWidth(); w > types.SlotSize {
		return types.TypeDefinition{}, fmt.Errorf("record width %d exceeds slot size %d", w, types.SlotSize)
	}
	return def, nil
}

func formatLine(def types.TypeDefinition) string {
	parts := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		parts[i] = f.Name + ":" + f.Type.Tag()
	}
	return fmt.Sprintf("%s|%d|%d|%s", def.Name, len(def.Fields), def.PrimaryKey+1, strings.Join(parts, ","))
}

func parseLine(line string, stringWidth int) (types.TypeDefinition, error) {
	cols := strings.Split(line, "|")
	if len(cols) != 4 {
		return types.TypeDefinition{}, fmt.Errorf("expected 4 '|' separated columns, got %d", len(cols))
	}

	fieldCount, err := strconv.Atoi(cols[1])
	if err != nil {
		return types.TypeDefinition{}, fmt.Errorf("bad field count %q", cols[1])
	}
	pkIndex, err := strconv.Atoi(cols[2])
	if err != nil {
		return types.TypeDefinition{}, fmt.Errorf("bad primary key index %q", cols[2])
	}

	var specs []types.FieldSpec
	if cols[3] != "" {
		for _, pair := range strings.Split(cols[3], ",") {
			fieldName, tag, ok := strings.Cut(pair, ":")
			if !ok {
				return types.TypeDefinition{}, fmt.Errorf("bad field %q", pair)
			}
			specs = append(specs, types.FieldSpec{Name: fieldName, TypeTag: tag})
		}
	}

	return newDefinition(cols[0], fieldCount, pkIndex, specs, stringWidth)
}
