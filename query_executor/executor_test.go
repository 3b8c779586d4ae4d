package executor

import (
	"DuneArchive/config"
	"DuneArchive/query_parser/parser"
	storageengine "DuneArchive/storage_engine"
	"DuneArchive/types"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, dir string) (*Executor, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = dir

	engine, err := storageengine.NewStorageEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	ex, err := NewExecutor(engine, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ex.Close() })
	ex.now = func() time.Time { return time.Unix(1700000000, 0) }
	return ex, cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

const script = `# sample run
create type human 3 1 name str age int city str

create record human Paul 15 Caladan
create record human Jessica 35 Caladan
create record human Paul 16 Arrakeen
search record human Paul
search record human Stilgar
delete record human Jessica
delete record human Jessica
search record human Jessica
fly ornithopter
create record ghost 1
`

func TestRun_Outputs(t *testing.T) {
	ex, cfg := newTestExecutor(t, t.TempDir())

	sum, err := ex.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 13, Skipped: 2, Succeeded: 5, Failed: 6}, sum)

	assert.Equal(t, []string{
		"timestamp,operation,status",
		"1700000000,create type human 3 1 name str age int city str,success",
		"1700000000,create record human Paul 15 Caladan,success",
		"1700000000,create record human Jessica 35 Caladan,success",
		"1700000000,create record human Paul 16 Arrakeen,failure",
		"1700000000,search record human Paul,success",
		"1700000000,search record human Stilgar,failure",
		"1700000000,delete record human Jessica,success",
		"1700000000,delete record human Jessica,failure",
		"1700000000,search record human Jessica,failure",
		"1700000000,fly ornithopter,failure",
		"1700000000,create record ghost 1,failure",
	}, readLines(t, cfg.StatusLogPath()))

	out := readLines(t, cfg.OutputFilePath())
	require.Len(t, out, 2)
	assert.Equal(t, "Paul 15 Caladan", out[0])
	assert.True(t, strings.HasPrefix(out[1], "Line 12: Failed - Invalid operation format: unknown command"), out[1])
}

func TestProcessLine_Results(t *testing.T) {
	ex, _ := newTestExecutor(t, t.TempDir())

	res := ex.ProcessLine(1, "create type worm 2 1 id int length int")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, types.OpCreateType, res.Op)

	res = ex.ProcessLine(2, "create record worm 1 400")
	require.True(t, res.Success, res.Message)

	res = ex.ProcessLine(3, "create record worm 1 500")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, types.ErrDuplicateKey)

	res = ex.ProcessLine(4, "create record worm 2 99999999999999999999")
	assert.ErrorIs(t, res.Err, types.ErrFieldConstraint)

	res = ex.ProcessLine(5, "search record worm one")
	assert.ErrorIs(t, res.Err, types.ErrInvalidKeyValue)

	res = ex.ProcessLine(6, "create type worm 1 1 id int")
	assert.ErrorIs(t, res.Err, types.ErrDuplicateType)
	assert.Equal(t, types.FamilyCatalog, types.FamilyOf(res.Err))

	res = ex.ProcessLine(7, "search record worm 1")
	require.True(t, res.Success)
	assert.Equal(t, []string{"1 400"}, res.Rows)

	res = ex.ProcessLine(8, "   ")
	assert.True(t, res.Skipped)
}

func TestOutputTruncatedStatusAppended(t *testing.T) {
	dir := t.TempDir()

	first, cfg := newTestExecutor(t, dir)
	first.ProcessLine(1, "create type worm 1 1 id int")
	first.ProcessLine(2, "create record worm 1")
	first.ProcessLine(3, "search record worm 1")
	require.NoError(t, first.Close())
	assert.Equal(t, []string{"1"}, readLines(t, cfg.OutputFilePath()))

	second, _ := newTestExecutor(t, dir)
	second.ProcessLine(1, "search record worm 2")
	require.NoError(t, second.Close())

	raw, err := os.ReadFile(cfg.OutputFilePath())
	require.NoError(t, err)
	assert.Empty(t, raw)

	status := readLines(t, cfg.StatusLogPath())
	assert.Len(t, status, 5, "header once plus four rows")
	assert.Equal(t, "timestamp,operation,status", status[0])
}

func TestProcessLine_RecoversPanic(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = dir

	ex, err := NewExecutor(nil, cfg)
	require.NoError(t, err)
	defer ex.Close()

	res := ex.ProcessLine(3, "search record human Paul")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, types.ErrInternal)

	out := readLines(t, cfg.OutputFilePath())
	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "Line 3: Critical error - [INTERNAL]"), out[0])

	status := readLines(t, cfg.StatusLogPath())
	assert.True(t, strings.HasSuffix(status[len(status)-1], ",search record human Paul,failure"))
}

func TestRun_Cancelled(t *testing.T) {
	ex, _ := newTestExecutor(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ex.Run(ctx, strings.NewReader("create type worm 1 1 id int\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LineLongerThanScannerBuffer(t *testing.T) {
	ex, cfg := newTestExecutor(t, t.TempDir())

	huge := strings.Repeat("a", 2<<20)
	input := "create type human 3 1 name str age int city str\n" +
		"create record human " + huge + " 1 Arrakeen\n" +
		"create record human Paul 15 Caladan\n" +
		"search record human Paul"

	sum, err := ex.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 4, Succeeded: 3, Failed: 1}, sum)

	status := readLines(t, cfg.StatusLogPath())
	require.Len(t, status, 5)
	assert.True(t, strings.HasSuffix(status[2], ",failure"))
	assert.Equal(t, "1700000000,search record human Paul,success", status[4])
	assert.Equal(t, []string{"Paul 15 Caladan"}, readLines(t, cfg.OutputFilePath()))
}

func TestProcessLine_StrictGrammar(t *testing.T) {
	ex, cfg := newTestExecutor(t, t.TempDir())
	ex.ProcessLine(1, "create type human 3 1 name str age int city str")
	ex.ProcessLine(2, "create record human Paul 15 Caladan")

	res := ex.ProcessLine(3, "search record human Paul Atreides")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, parser.ErrUnexpectedTokens)

	res = ex.ProcessLine(4, "delete record human Paul now")
	assert.ErrorIs(t, res.Err, parser.ErrUnexpectedTokens)

	res = ex.ProcessLine(5, "create type worm two 1 id int")
	assert.ErrorIs(t, res.Err, parser.ErrExpectedInt)

	out := readLines(t, cfg.OutputFilePath())
	require.Len(t, out, 3)
	assert.Equal(t, "Line 3: Failed - Invalid operation format: unexpected tokens at end of line: Atreides", out[0])
	assert.True(t, strings.HasPrefix(out[1], "Line 4: Failed - Invalid operation format: "), out[1])
	assert.True(t, strings.HasPrefix(out[2], "Line 5: Failed - Invalid operation format: expected integer"), out[2])

	status := readLines(t, cfg.StatusLogPath())
	assert.Equal(t, "1700000000,search record human Paul Atreides,failure", status[3])

	res = ex.ProcessLine(6, "search record human Paul")
	require.True(t, res.Success, "the record survives the rejected delete")
	assert.Contains(t, CommandHelp, "extra words after the key")
}
