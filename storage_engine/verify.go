package storageengine

import (
	"DuneArchive/logging"
	"DuneArchive/types"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// maxVerifyWorkers bounds how many heap files Verify reads at once.
const maxVerifyWorkers = 4

/*
Verify is a read-only audit of every heap file known to the catalog. Each
type is checked by its own goroutine; a page is checked for

	- header page number == its position in the file
	- RecordCount == Bitmap.Count()
	- no bitmap bits at or above SlotsPerPage
	- validity byte of every slot agrees with its bitmap bit
	- every live record decodes
	- no primary key appears on two live records

Inconsistencies are collected as issues; only I/O failures and context
cancellation make Verify itself fail.
*/
func (se *StorageEngine) Verify(ctx context.Context) (*VerifyReport, error) {
	defs := se.CatalogManager.ListTypes()
	reports := make([]TypeReport, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxVerifyWorkers)
	for i, def := range defs {
		g.Go(func() error {
			report, err := se.verifyType(ctx, def)
			if err != nil {
				return fmt.Errorf("verify %s: %w", def.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &VerifyReport{Types: reports}
	logging.WithComponent("verify").Info("heap files verified",
		"types", len(reports),
		"issues", report.IssueCount(),
	)
	return report, nil
}

func (se *StorageEngine) verifyType(ctx context.Context, def types.TypeDefinition) (TypeReport, error) {
	report := TypeReport{Type: def.Name}

	size, err := se.HeapManager.FileSize(def.Name)
	if err != nil {
		return report, err
	}
	report.FileBytes = size
	if rem := size % types.PageSize; rem != 0 {
		report.addIssue(types.RecordID{PageNo: size / types.PageSize, Slot: -1},
			"trailing %d bytes do not form a whole page", rem)
	}

	keyOffset, err := FieldOffset(def.Fields, def.PrimaryKey)
	if err != nil {
		return report, err
	}
	keyField := def.KeyField()
	seen := make(map[string]types.RecordID)

	it := se.HeapManager.IteratePages(def.Name)
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		pageNo := it.PageNo()
		pg := it.Page()
		report.Pages++
		pageRID := types.RecordID{PageNo: pageNo, Slot: -1}

		if int64(pg.Header.PageNo) != pageNo {
			report.addIssue(pageRID, "header page number is %d", pg.Header.PageNo)
		}
		if int(pg.Header.RecordCount) != pg.Header.Bitmap.Count() {
			report.addIssue(pageRID, "record count %d but %d bitmap bits set", pg.Header.RecordCount, pg.Header.Bitmap.Count())
		}
		if extra := pg.Header.Bitmap.Overflow(types.SlotsPerPage); extra != 0 {
			report.addIssue(pageRID, "bitmap bits beyond slot %d: %#x", types.SlotsPerPage-1, uint16(extra))
		}

		for slot := 0; slot < types.SlotsPerPage; slot++ {
			rid := types.RecordID{PageNo: pageNo, Slot: slot}
			payload := pg.Slot(slot)
			live := pg.IsLive(slot)

			switch {
			case live && payload[0] != types.RecordLive:
				report.addIssue(rid, "bitmap bit set but validity byte is %d", payload[0])
				continue
			case !live && payload[0] == types.RecordLive:
				report.addIssue(rid, "validity byte set but bitmap bit clear")
				continue
			case !live:
				continue
			}

			report.LiveRecords++
			if _, err := DecodeRecord(def.Fields, payload); err != nil {
				report.addIssue(rid, "record does not decode: %v", err)
				continue
			}
			key, err := BytesToValue(payload[keyOffset:], keyField)
			if err != nil {
				report.addIssue(rid, "key does not decode: %v", err)
				continue
			}
			k := fmt.Sprint(key)
			if first, dup := seen[k]; dup {
				report.addIssue(rid, "duplicate key %s=%s, first seen at %s", keyField.Name, k, first)
				continue
			}
			seen[k] = rid
		}
	}
	if err := it.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *TypeReport) addIssue(rid types.RecordID, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{RID: rid, Message: fmt.Sprintf(format, args...)})
}

func (r *VerifyReport) IssueCount() int {
	n := 0
	for _, t := range r.Types {
		n += len(t.Issues)
	}
	return n
}

func (r *VerifyReport) OK() bool {
	return r.IssueCount() == 0
}

func (i Issue) String() string {
	if i.RID.Slot < 0 {
		return fmt.Sprintf("page %d: %s", i.RID.PageNo, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.RID, i.Message)
}

// WriteTo renders the report as text, one block per type.
func (r *VerifyReport) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, t := range r.Types {
		status := "ok"
		if len(t.Issues) > 0 {
			status = fmt.Sprintf("%d issue(s)", len(t.Issues))
		}
		fmt.Fprintf(&sb, "%-16s %s pages, %s records, %s  %s\n",
			t.Type,
			humanize.Comma(t.Pages),
			humanize.Comma(int64(t.LiveRecords)),
			humanize.IBytes(uint64(t.FileBytes)),
			status,
		)
		for _, issue := range t.Issues {
			fmt.Fprintf(&sb, "    %s\n", issue)
		}
	}
	fmt.Fprintf(&sb, "%d type(s), %d issue(s)\n", len(r.Types), r.IssueCount())

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
