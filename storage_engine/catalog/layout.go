package catalog

import (
	types "DuneArchive/types"
)

// Layout returns the field offsets of the named type. Layouts are derived
// from the definition and memoised; a definition never changes once created,
// so a cached layout never goes stale.
func (cm *CatalogManager) Layout(name string) (*types.Layout, error) {
	if layout, ok := cm.layouts.Get(name); ok {
		return layout, nil
	}

	def, err := cm.Resolve(name)
	if err != nil {
		return nil, err
	}

	layout := ComputeLayout(def)
	cm.layouts.Set(name, layout, int64(len(layout.Offsets)+1))
	return layout, nil
}

// ComputeLayout resolves the byte offset of every field within a slot. The
// first field starts right after the validity byte.
func ComputeLayout(def types.TypeDefinition) *types.Layout {
	offsets := make([]int, len(def.Fields))
	off := 1
	for i, f := range def.Fields {
		offsets[i] = off
		off += f.Width
	}
	return &types.Layout{
		Def:       def,
		Offsets:   offsets,
		KeyOffset: offsets[def.PrimaryKey],
	}
}
