// Interactive browser for an archive data directory: lists the catalog's
// types, the live records of a type, and the raw slots of each heap page.
// Usage: go run ./cmd/heap_browser [-data dir]
package main

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	storageengine "DuneArchive/storage_engine"
	"DuneArchive/storage_engine/page"
	"DuneArchive/types"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	viewLoading = "loading"
	viewNoTypes = "no_types"
	viewMenu    = "menu"
	viewRecords = "records"
	viewPage    = "page"
)

type typeInfo struct {
	def   types.TypeDefinition
	pages int64
	bytes int64
}

type browserModel struct {
	se       *storageengine.StorageEngine
	view     string
	cursor   int
	types    []typeInfo
	selected *typeInfo

	records   []types.Record
	rowCursor int

	pageNo   int64
	page     *page.Page
	viewport viewport.Model
	width    int
	height   int
	err      error
}

func initialModel(se *storageengine.StorageEngine) browserModel {
	return browserModel{
		se:       se,
		view:     viewLoading,
		viewport: viewport.New(80, 20),
	}
}

func (m browserModel) Init() tea.Cmd {
	return loadTypes(m.se)
}

type typesLoadedMsg struct {
	types []typeInfo
	err   error
}

func loadTypes(se *storageengine.StorageEngine) tea.Cmd {
	return func() tea.Msg {
		var infos []typeInfo
		for _, def := range se.Types() {
			pages, err := se.HeapManager.PageCount(def.Name)
			if err != nil {
				return typesLoadedMsg{err: err}
			}
			size, err := se.HeapManager.FileSize(def.Name)
			if err != nil {
				return typesLoadedMsg{err: err}
			}
			infos = append(infos, typeInfo{def: def, pages: pages, bytes: size})
		}
		return typesLoadedMsg{types: infos}
	}
}

type recordsLoadedMsg struct {
	records []types.Record
	err     error
}

func loadRecords(se *storageengine.StorageEngine, typeName string) tea.Cmd {
	return func() tea.Msg {
		records, err := se.ScanAll(typeName)
		return recordsLoadedMsg{records: records, err: err}
	}
}

type pageLoadedMsg struct {
	pageNo int64
	page   *page.Page
	err    error
}

func loadPage(se *storageengine.StorageEngine, typeName string, pageNo int64) tea.Cmd {
	return func() tea.Msg {
		pg, err := se.HeapManager.ReadPage(typeName, pageNo)
		return pageLoadedMsg{pageNo: pageNo, page: pg, err: err}
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case typesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.types = msg.types
		if len(m.types) == 0 {
			m.view = viewNoTypes
		} else {
			m.view = viewMenu
		}
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records
		m.rowCursor = 0
		m.view = viewRecords
		return m, nil

	case pageLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.pageNo = msg.pageNo
		m.page = msg.page
		m.viewport.SetContent(m.renderSlots())
		m.viewport.GotoTop()
		m.view = viewPage
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-12)
		return m, nil

	case tea.KeyMsg:
		if m.err != nil || key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.view {
		case viewNoTypes:
			return m, nil

		case viewMenu:
			switch {
			case key.Matches(msg, keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
			case key.Matches(msg, keys.Down):
				if m.cursor < len(m.types)-1 {
					m.cursor++
				}
			case key.Matches(msg, keys.Select):
				m.selected = &m.types[m.cursor]
				return m, loadRecords(m.se, m.selected.def.Name)
			}
			return m, nil

		case viewRecords:
			switch {
			case key.Matches(msg, keys.Back):
				m.view = viewMenu
				m.records = nil
				m.selected = nil
			case key.Matches(msg, keys.Up):
				if m.rowCursor > 0 {
					m.rowCursor--
				}
			case key.Matches(msg, keys.Down):
				if m.rowCursor < len(m.records)-1 {
					m.rowCursor++
				}
			case key.Matches(msg, keys.Select):
				if m.selected.pages == 0 {
					return m, nil
				}
				var pageNo int64
				if m.rowCursor < len(m.records) {
					pageNo = m.records[m.rowCursor].ID.PageNo
				}
				return m, loadPage(m.se, m.selected.def.Name, pageNo)
			}
			return m, nil

		case viewPage:
			switch {
			case key.Matches(msg, keys.Back):
				m.view = viewRecords
				m.page = nil
				return m, nil
			case key.Matches(msg, keys.NextPage):
				if m.pageNo < m.selected.pages-1 {
					return m, loadPage(m.se, m.selected.def.Name, m.pageNo+1)
				}
				return m, nil
			case key.Matches(msg, keys.PrevPage):
				if m.pageNo > 0 {
					return m, loadPage(m.se, m.selected.def.Name, m.pageNo-1)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.view == viewPage {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dune Archive heap browser") + "\n\n")

	switch m.view {
	case viewLoading:
		b.WriteString("Loading catalog...\n")
	case viewNoTypes:
		b.WriteString("The catalog defines no types.\n\n")
		b.WriteString(helpStyle.Render("q: quit"))
	case viewMenu:
		b.WriteString(m.renderMenu())
	case viewRecords:
		b.WriteString(m.renderRecords())
	case viewPage:
		b.WriteString(m.renderPage())
	}

	b.WriteString("\n" + m.renderStatusBar())
	return b.String()
}

func (m browserModel) renderMenu() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" Types (%d) ", len(m.types))) + "\n\n")

	for i, t := range m.types {
		line := fmt.Sprintf("%s  fields=%d key=%s pages=%d size=%s",
			t.def.Name, len(t.def.Fields), t.def.KeyField().Name, t.pages, humanize.IBytes(uint64(t.bytes)))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("↑/↓: navigate | enter: view records | q: quit"))
	return b.String()
}

func (m browserModel) renderRecords() string {
	def := m.selected.def
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(" %s (%s records, %d pages) ",
		def.Name, humanize.Comma(int64(len(m.records))), m.selected.pages)) + "\n\n")

	if len(m.records) == 0 {
		b.WriteString("No live records.\n")
		b.WriteString(helpStyle.Render("esc: back | q: quit"))
		return b.String()
	}

	headers := append([]string{"rid"}, fieldNames(def)...)
	rows := make([][]string, len(m.records))
	for i, rec := range m.records {
		row := []string{rec.ID.String()}
		for _, v := range rec.Values {
			row = append(row, fmt.Sprint(v))
		}
		rows[i] = row
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var header strings.Builder
	for i, h := range headers {
		header.WriteString(columnStyle.Render(padString(h, widths[i])) + " ")
	}
	b.WriteString(header.String() + "\n")

	start := max(0, m.rowCursor-10)
	end := min(len(rows), start+20)
	for i := start; i < end; i++ {
		var line strings.Builder
		for c, cell := range rows[i] {
			cell = padString(cell, widths[c])
			if i == m.rowCursor {
				line.WriteString(selectedStyle.Render(cell))
			} else {
				line.WriteString(itemStyle.Render(cell))
			}
			line.WriteString(" ")
		}
		b.WriteString(line.String() + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: navigate | enter: open page | esc: back | q: quit"))
	return b.String()
}

func (m browserModel) renderPage() string {
	var b strings.Builder
	h := m.page.Header
	b.WriteString(headerStyle.Render(fmt.Sprintf(" %s page %d: records=%d bitmap=%s ",
		m.selected.def.Name, m.pageNo, h.RecordCount, h.Bitmap)) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(helpStyle.Render("↑/↓: scroll | n/p: next/prev page | esc: back | q: quit"))
	return b.String()
}

// renderSlots lists every slot of the current page, decoding live ones.
func (m browserModel) renderSlots() string {
	fields := m.selected.def.Fields
	var b strings.Builder
	for i := 0; i < types.SlotsPerPage; i++ {
		label := fmt.Sprintf("slot %d", i)
		if !m.page.IsLive(i) {
			b.WriteString(deadSlotStyle.Render(label+": free") + "\n")
			continue
		}
		values, err := storageengine.DecodeRecord(fields, m.page.Slot(i))
		if err != nil {
			b.WriteString(errorStyle.UnsetPadding().Render(fmt.Sprintf("%s: %v", label, err)) + "\n")
			continue
		}
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = fmt.Sprintf("%s=%v", fields[j].Name, v)
		}
		b.WriteString(itemStyle.Render(label+": "+strings.Join(cells, " ")) + "\n")
	}
	return b.String()
}

func (m browserModel) renderStatusBar() string {
	var status string
	switch m.view {
	case viewMenu:
		status = fmt.Sprintf(" Heap files: %s | Types: %d ", m.se.HeapManager.BaseDir(), len(m.types))
	case viewRecords:
		status = fmt.Sprintf(" %s | Row %d/%d ", m.selected.def.Name, m.rowCursor+1, len(m.records))
	case viewPage:
		status = fmt.Sprintf(" %s | Page %d/%d ", m.selected.def.Name, m.pageNo+1, m.selected.pages)
	default:
		status = " Loading... "
	}
	return statusBarStyle.Render(status)
}

func fieldNames(def types.TypeDefinition) []string {
	names := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		names[i] = f.Name
	}
	return names
}

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("heap_browser", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	// Anything written to the terminal would tear the UI.
	logging.InitWriter(io.Discard, logging.LevelError, "text")

	se, err := storageengine.NewStorageEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer se.Close()

	p := tea.NewProgram(initialModel(se), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
