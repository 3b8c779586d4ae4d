package catalog

import (
	"DuneArchive/logging"
	types "DuneArchive/types"
	"fmt"
	"os"
	"strconv"
	"strings"
)

/*
The catalog line format carries no field widths, so the string width a
catalog was created with is kept in a sidecar next to it:

	catalog.txt.meta
	string_width=32

Every record already on disk was laid out with that width. Opening the
catalog with any other width is refused instead of silently shifting every
field offset. A catalog that has lines but no sidecar was written before the
sidecar existed and is taken to use DefaultStringWidth.
*/

const (
	metaSuffix     = ".meta"
	stringWidthKey = "string_width"
)

// MetaPath is the sidecar holding the catalog's string width.
func (cm *CatalogManager) MetaPath() string {
	return cm.Path() + metaSuffix
}

// StringWidth is the width given to every string field of this catalog.
func (cm *CatalogManager) StringWidth() int {
	return cm.stringWidth
}

// bindStringWidth records the configured string width for a new catalog, or
// checks it against the recorded one.
func (cm *CatalogManager) bindStringWidth() error {
	log := logging.WithComponent("catalog")

	stored, ok, err := readStringWidth(cm.MetaPath())
	if err != nil {
		return err
	}
	if !ok {
		info, err := os.Stat(cm.path)
		if err != nil {
			return types.Errorf(types.ErrCatalogIO, "failed to stat catalog: %w", err)
		}
		stored = cm.stringWidth
		if info.Size() > 0 {
			stored = types.DefaultStringWidth
		}
		if stored == cm.stringWidth {
			if err := writeStringWidth(cm.MetaPath(), stored); err != nil {
				return err
			}
			log.Debug("catalog string width recorded", "path", cm.MetaPath(), "width", stored)
		}
	}

	if stored != cm.stringWidth {
		return types.Errorf(types.ErrInvalidDefinition,
			"catalog %s was created with string width %d, configured width is %d", cm.path, stored, cm.stringWidth)
	}
	return nil
}

// readStringWidth reports the recorded width, or ok=false if there is no
// sidecar.
func readStringWidth(path string) (width int, ok bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, types.Errorf(types.ErrCatalogIO, "failed to read catalog meta: %w", err)
	}

	key, value, found := strings.Cut(strings.TrimSpace(string(raw)), "=")
	if !found || strings.TrimSpace(key) != stringWidthKey {
		return 0, false, types.Errorf(types.ErrCatalogCorrupt, "catalog meta %s: expected %s=<n>", path, stringWidthKey)
	}
	width, err = strconv.Atoi(strings.TrimSpace(value))
	if err != nil || width <= 0 {
		return 0, false, types.Errorf(types.ErrCatalogCorrupt, "catalog meta %s: bad string width %q", path, value)
	}
	return width, true, nil
}

func writeStringWidth(path string, width int) error {
	line := fmt.Sprintf("%s=%d\n", stringWidthKey, width)
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		return types.Errorf(types.ErrCatalogIO, "failed to write catalog meta: %w", err)
	}
	return nil
}
