package catalog

import (
	types "DuneArchive/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, path string) *CatalogManager {
	t.Helper()
	return newWidthCatalog(t, path, types.DefaultStringWidth)
}

func newWidthCatalog(t *testing.T, path string, stringWidth int) *CatalogManager {
	t.Helper()
	cm, err := NewCatalogManager(path, stringWidth)
	require.NoError(t, err)
	t.Cleanup(cm.Close)
	require.NoError(t, cm.Initialize())
	require.NoError(t, cm.Load())
	return cm
}

func humanSpecs() []types.FieldSpec {
	return []types.FieldSpec{
		{Name: "name", TypeTag: "str"},
		{Name: "age", TypeTag: "int"},
		{Name: "city", TypeTag: "str"},
	}
}

func TestCreateType_PersistsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	cm := newTestCatalog(t, path)

	def, err := cm.CreateType("human", 3, 1, humanSpecs())
	require.NoError(t, err)
	assert.Equal(t, 0, def.PrimaryKey)
	assert.Equal(t, []types.Field{
		{Name: "name", Type: types.FieldString, Width: 32},
		{Name: "age", Type: types.FieldInt, Width: 8},
		{Name: "city", Type: types.FieldString, Width: 32},
	}, def.Fields)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "human|3|1|name:str,age:int,city:str\n", string(raw))

	assert.True(t, cm.TypeExists("human"))
	got, err := cm.Resolve("human")
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestCreateType_Duplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	cm := newTestCatalog(t, path)

	_, err := cm.CreateType("human", 3, 1, humanSpecs())
	require.NoError(t, err)

	_, err = cm.CreateType("human", 1, 1, []types.FieldSpec{{Name: "id", TypeTag: "int"}})
	assert.ErrorIs(t, err, types.ErrDuplicateType)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "human|3|1|name:str,age:int,city:str\n", string(raw), "rejected create must not append")
}

func TestCreateType_InvalidDefinitions(t *testing.T) {
	cm := newTestCatalog(t, filepath.Join(t.TempDir(), "catalog.txt"))

	wide := make([]types.FieldSpec, 4)
	for i := range wide {
		wide[i] = types.FieldSpec{Name: string(rune('a' + i)), TypeTag: "str"}
	}

	tests := []struct {
		name       string
		typeName   string
		fieldCount int
		pk         int
		specs      []types.FieldSpec
	}{
		{"pk zero", "t", 3, 0, humanSpecs()},
		{"pk past end", "t", 3, 4, humanSpecs()},
		{"count mismatch", "t", 2, 1, humanSpecs()},
		{"unknown tag", "t", 1, 1, []types.FieldSpec{{Name: "f", TypeTag: "float"}}},
		{"duplicate field", "t", 2, 1, []types.FieldSpec{{Name: "f", TypeTag: "int"}, {Name: "f", TypeTag: "str"}}},
		{"empty field name", "t", 1, 1, []types.FieldSpec{{Name: "", TypeTag: "int"}}},
		{"delimiter in field", "t", 1, 1, []types.FieldSpec{{Name: "a:b", TypeTag: "int"}}},
		{"delimiter in type", "a|b", 1, 1, []types.FieldSpec{{Name: "f", TypeTag: "int"}}},
		{"path in type", "../x", 1, 1, []types.FieldSpec{{Name: "f", TypeTag: "int"}}},
		{"space in type", "a b", 1, 1, []types.FieldSpec{{Name: "f", TypeTag: "int"}}},
		{"does not fit slot", "t", 4, 1, wide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cm.CreateType(tt.typeName, tt.fieldCount, tt.pk, tt.specs)
			assert.ErrorIs(t, err, types.ErrInvalidDefinition)
			assert.Equal(t, types.FamilyCatalog, types.FamilyOf(err))
		})
	}
	assert.Empty(t, cm.ListTypes())
}

func TestCreateType_ExactSlotFit(t *testing.T) {
	cm := newTestCatalog(t, filepath.Join(t.TempDir(), "catalog.txt"))

	// 1 + 3*32 + 3*8 = 121, then one more int pushes it to 129.
	specs := []types.FieldSpec{
		{Name: "a", TypeTag: "str"}, {Name: "b", TypeTag: "str"}, {Name: "c", TypeTag: "str"},
		{Name: "d", TypeTag: "int"}, {Name: "e", TypeTag: "int"}, {Name: "f", TypeTag: "int"},
	}
	def, err := cm.CreateType("fits", len(specs), 1, specs)
	require.NoError(t, err)
	assert.Equal(t, 121, def.RecordWidth())

	specs = append(specs, types.FieldSpec{Name: "g", TypeTag: "int"})
	_, err = cm.CreateType("overflows", len(specs), 1, specs)
	assert.ErrorIs(t, err, types.ErrInvalidDefinition)
}

func TestLoad_ReplaysAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	first := newTestCatalog(t, path)

	_, err := first.CreateType("human", 3, 2, humanSpecs())
	require.NoError(t, err)
	_, err = first.CreateType("angel", 1, 1, []types.FieldSpec{{Name: "id", TypeTag: "int"}})
	require.NoError(t, err)

	second := newTestCatalog(t, path)
	def, err := second.Resolve("human")
	require.NoError(t, err)
	assert.Equal(t, "age", def.KeyField().Name)

	names := []string{}
	for _, d := range second.ListTypes() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"angel", "human"}, names)

	_, err = second.CreateType("human", 3, 1, humanSpecs())
	assert.ErrorIs(t, err, types.ErrDuplicateType)
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("\nhuman|1|1|id:int\n\n"), 0644))

	cm := newTestCatalog(t, path)
	assert.True(t, cm.TypeExists("human"))
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few columns", "human|1|1\n"},
		{"bad count", "human|x|1|id:int\n"},
		{"bad field", "human|1|1|id\n"},
		{"bad tag", "human|1|1|id:float\n"},
		{"pk out of range", "human|1|2|id:int\n"},
		{"defined twice", "human|1|1|id:int\nhuman|1|1|id:int\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cm, err := NewCatalogManager(path, types.DefaultStringWidth)
			require.NoError(t, err)
			defer cm.Close()

			err = cm.Load()
			assert.ErrorIs(t, err, types.ErrCatalogCorrupt)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	cm := newTestCatalog(t, filepath.Join(t.TempDir(), "catalog.txt"))

	_, err := cm.Resolve("ghost")
	assert.ErrorIs(t, err, types.ErrTypeNotFound)
	assert.False(t, cm.TypeExists("ghost"))

	_, err = cm.Layout("ghost")
	assert.ErrorIs(t, err, types.ErrTypeNotFound)
}

func TestLayout(t *testing.T) {
	cm := newTestCatalog(t, filepath.Join(t.TempDir(), "catalog.txt"))

	_, err := cm.CreateType("human", 3, 2, humanSpecs())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		layout, err := cm.Layout("human")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 33, 41}, layout.Offsets)
		assert.Equal(t, 33, layout.KeyOffset)
		assert.Equal(t, "age", layout.KeyField().Name)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.txt")
	cm := newTestCatalog(t, path)

	_, err := cm.CreateType("human", 1, 1, []types.FieldSpec{{Name: "id", TypeTag: "int"}})
	require.NoError(t, err)
	require.NoError(t, cm.Initialize())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "human|1|1|id:int\n", string(raw))
}

func TestInitialize_RecordsStringWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	cm := newTestCatalog(t, path)
	_, err := cm.CreateType("human", 3, 1, humanSpecs())
	require.NoError(t, err)

	raw, err := os.ReadFile(cm.MetaPath())
	require.NoError(t, err)
	assert.Equal(t, "string_width=32\n", string(raw))

	for _, width := range []int{16, 100} {
		other, err := NewCatalogManager(path, width)
		require.NoError(t, err)
		err = other.Initialize()
		other.Close()
		assert.ErrorIs(t, err, types.ErrInvalidDefinition, "width %d", width)
	}

	again := newTestCatalog(t, path)
	def, err := again.Resolve("human")
	require.NoError(t, err)
	assert.Equal(t, 32, def.Fields[2].Width)
}

func TestInitialize_CatalogWithoutMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("human|1|1|name:str\n"), 0644))

	narrow, err := NewCatalogManager(path, 16)
	require.NoError(t, err)
	defer narrow.Close()
	assert.ErrorIs(t, narrow.Initialize(), types.ErrInvalidDefinition)
	assert.NoFileExists(t, narrow.MetaPath())

	cm := newTestCatalog(t, path)
	assert.FileExists(t, cm.MetaPath())
	assert.Equal(t, types.DefaultStringWidth, cm.StringWidth())
}

func TestInitialize_NewCatalogKeepsConfiguredWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	cm := newWidthCatalog(t, path, 16)

	def, err := cm.CreateType("human", 3, 1, humanSpecs())
	require.NoError(t, err)
	assert.Equal(t, 16, def.Fields[0].Width)

	reopened := newWidthCatalog(t, path, 16)
	got, err := reopened.Resolve("human")
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestInitialize_CorruptMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path+".meta", []byte("width=abc\n"), 0644))

	cm, err := NewCatalogManager(path, types.DefaultStringWidth)
	require.NoError(t, err)
	defer cm.Close()
	assert.ErrorIs(t, cm.Initialize(), types.ErrCatalogCorrupt)
}

func TestCatalogIOErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cm, err := NewCatalogManager(filepath.Join(blocker, "catalog.txt"), types.DefaultStringWidth)
	require.NoError(t, err)
	defer cm.Close()
	err = cm.Initialize()
	assert.ErrorIs(t, err, types.ErrCatalogIO)
	assert.NotErrorIs(t, err, types.ErrCatalogCorrupt)

	dir := filepath.Join(t.TempDir(), "cat")
	live := newTestCatalog(t, filepath.Join(dir, "catalog.txt"))
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, nil, 0644))

	_, err = live.CreateType("human", 3, 1, humanSpecs())
	assert.ErrorIs(t, err, types.ErrCatalogIO)
	assert.NotErrorIs(t, err, types.ErrCatalogCorrupt)
	assert.False(t, live.TypeExists("human"))
}
