package logging

import (
	"DuneArchive/types"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	var buf strings.Builder
	InitWriter(&buf, LevelDebug, "text")
	t.Cleanup(func() { Close() })

	dup := types.Errorf(types.ErrDuplicateKey, "human with name=Paul already exists")
	WithError(WithComponent("executor"), dup).Debug("line failed", "line", 4)
	WithError(WithComponent("executor"), errors.New("disk on fire")).Debug("line failed", "line", 5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], "component=executor")
		assert.Contains(t, lines[0], "family=record")
		assert.Contains(t, lines[0], "code=DUPLICATE_KEY")
		assert.Contains(t, lines[0], "line=4")
		assert.Contains(t, lines[1], `error="disk on fire"`)
		assert.NotContains(t, lines[1], "code=")
	}
}

func TestWithPage(t *testing.T) {
	var buf strings.Builder
	InitWriter(&buf, LevelDebug, "text")
	t.Cleanup(func() { Close() })

	WithPage("heap", "human", 3).Debug("wrote page")
	assert.Contains(t, buf.String(), "component=heap type=human page=3")
}

func TestInitWriter_Level(t *testing.T) {
	var buf strings.Builder
	InitWriter(&buf, LevelWarn, "json")
	t.Cleanup(func() { Close() })

	Info("hidden")
	Warn("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
