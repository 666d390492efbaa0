package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// column is one table column; key is the sort key passed to stats, empty
// for columns that cannot be sorted
type column struct {
	title string
	key   string
}

// sortTable is a selectable table whose header marks the sort column
type sortTable struct {
	root    *tview.Flex
	table   *tview.Table
	info    *tview.TextView
	columns []column
	sortCol int
	sortAsc bool
}

func newSortTable(columns []column, sortCol int) *sortTable {
	t := &sortTable{
		columns: columns,
		sortCol: sortCol,
	}

	t.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	t.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	t.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.table, 0, 1, true).
		AddItem(t.info, 1, 0, false)

	t.renderHeader()
	return t
}

func (t *sortTable) renderHeader() {
	for col, c := range t.columns {
		title := c.title
		if col == t.sortCol {
			if t.sortAsc {
				title += "▲"
			} else {
				title += "▼"
			}
		}

		t.table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// reset drops every data row
func (t *sortTable) reset() {
	for row := t.table.GetRowCount() - 1; row > 0; row-- {
		t.table.RemoveRow(row)
	}
	t.renderHeader()
}

func (t *sortTable) sortKey() string {
	return t.columns[t.sortCol].key
}

func (t *sortTable) sortTitle() string {
	return t.columns[t.sortCol].title
}

func (t *sortTable) setInfo(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	t.info.SetText(fmt.Sprintf("%s | Sort: [green]%s[-] | [s[] cycle column, [r[] reverse", text, t.sortTitle()))
}

// CycleSortColumn moves to the next sortable column
func (t *sortTable) CycleSortColumn() {
	for range t.columns {
		t.sortCol = (t.sortCol + 1) % len(t.columns)
		if t.columns[t.sortCol].key != "" {
			return
		}
	}
}

// ReverseSortOrder reverses the sort order
func (t *sortTable) ReverseSortOrder() {
	t.sortAsc = !t.sortAsc
}

// Root returns the root primitive
func (t *sortTable) Root() tview.Primitive {
	return t.root
}

// GetFocusable returns the focusable component
func (t *sortTable) GetFocusable() tview.Primitive {
	return t.table
}

// Rows returns the number of data rows
func (t *sortTable) Rows() int {
	return t.table.GetRowCount() - 1
}

// CellText returns the text of a data cell, row 0 being the first data row
func (t *sortTable) CellText(row, col int) string {
	cell := t.table.GetCell(row+1, col)
	if cell == nil {
		return ""
	}
	return cell.Text
}

func rankCell(i int) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("%d", i+1)).
		SetTextColor(tcell.ColorDarkGray).
		SetAlign(tview.AlignRight)
}

func countCell(n int) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("%d", n)).
		SetAlign(tview.AlignRight)
}

func addedCell(n int) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("+%d", n)).
		SetTextColor(tcell.ColorGreen).
		SetAlign(tview.AlignRight)
}

func deletedCell(n int) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("-%d", n)).
		SetTextColor(tcell.ColorRed).
		SetAlign(tview.AlignRight)
}

// authorCountCell highlights paths shared by many authors
func authorCountCell(n int) *tview.TableCell {
	color := tcell.ColorWhite
	switch {
	case n >= 5:
		color = tcell.ColorRed
	case n >= 3:
		color = tcell.ColorYellow
	}
	return countCell(n).SetTextColor(color)
}

func truncatePath(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	return "..." + strings.TrimLeft(string(runes[len(runes)-width+3:]), "/")
}

// bar renders a fixed-width block bar for a 0-100 value
func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
