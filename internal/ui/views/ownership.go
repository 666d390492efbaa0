package views

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

var ownershipSortKeys = []string{"changes", "commits", "authors", "path"}

// OwnershipView lists top-level directories with a per-author breakdown
type OwnershipView struct {
	root    *tview.Flex
	list    *tview.List
	detail  *tview.TextView
	info    *tview.TextView
	dirs    []*stats.DirStats
	sortCol int
	sortAsc bool
}

// NewOwnershipView creates a new ownership view
func NewOwnershipView() *OwnershipView {
	v := &OwnershipView{}

	v.list = tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	v.list.SetBorder(true).SetTitle(" Directories ")

	v.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	v.detail.SetBorder(true).SetTitle(" Ownership Details ")

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	content := tview.NewFlex().
		AddItem(v.list, 35, 0, true).
		AddItem(v.detail, 0, 1, false)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.list.SetChangedFunc(func(idx int, _, _ string, _ rune) {
		if idx >= 0 && idx < len(v.dirs) {
			v.detail.SetText(ownershipDetail(v.dirs[idx]))
			v.detail.SetTitle(fmt.Sprintf(" %s ", dirLabel(v.dirs[idx].Path)))
		}
	})

	return v
}

// Refresh updates the view with new data
func (v *OwnershipView) Refresh(s *stats.Summary) {
	v.list.Clear()
	v.detail.Clear()

	v.dirs = s.Ownership(ownershipSortKeys[v.sortCol], v.sortAsc)
	for _, dir := range v.dirs {
		secondary := fmt.Sprintf("%s changes, %d authors", compactCount(dir.Changes), len(dir.Authors))
		v.list.AddItem(dirLabel(dir.Path), secondary, 0, nil)
	}

	if len(v.dirs) > 0 {
		v.list.SetCurrentItem(0)
		v.detail.SetText(ownershipDetail(v.dirs[0]))
		v.detail.SetTitle(fmt.Sprintf(" %s ", dirLabel(v.dirs[0].Path)))
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] directories | [s[] sort by: [green]%s[-] | [r[] reverse order",
		len(v.dirs), ownershipSortKeys[v.sortCol]))
}

// Directories returns the directories in display order
func (v *OwnershipView) Directories() []*stats.DirStats {
	return v.dirs
}

// Detail returns the text of the details panel
func (v *OwnershipView) Detail() string {
	return v.detail.GetText(false)
}

func ownershipDetail(dir *stats.DirStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[::b]%s[-:-:-]\n\n", dirLabel(dir.Path))
	sb.WriteString("[yellow]━━━ Overview ━━━[-]\n\n")
	fmt.Fprintf(&sb, "  Total Changes:  [cyan]%s[-] lines\n", humanize.Comma(int64(dir.Changes)))
	fmt.Fprintf(&sb, "  File Touches:   [cyan]%d[-]\n", dir.Commits)
	fmt.Fprintf(&sb, "  Contributors:   [cyan]%d[-] authors\n", len(dir.Authors))

	owners := dir.Owners()
	if len(owners) == 0 {
		return sb.String()
	}

	sb.WriteString("\n[yellow]━━━ Ownership Breakdown ━━━[-]\n\n")

	nameWidth := 0
	for _, o := range owners {
		nameWidth = max(nameWidth, len([]rune(o.Name)))
	}
	nameWidth = min(nameWidth, 20)

	for i, o := range owners {
		name := o.Name
		if r := []rune(name); len(r) > 20 {
			name = string(r[:17]) + "..."
		}

		rank := "  "
		switch i {
		case 0:
			rank = "[gold]★[-] "
		case 1:
			rank = "[silver]☆[-] "
		case 2:
			rank = "[#CD7F32]☆[-] "
		}

		fmt.Fprintf(&sb, "  %s%-*s [%s]%s[-] [white]%5.1f%%[-] (%d touches)\n",
			rank, nameWidth, tview.Escape(name), shareColor(o.Share), bar(o.Share, 30), o.Share, o.Commits)
	}

	sb.WriteString("\n[yellow]━━━ Analysis ━━━[-]\n\n")
	fmt.Fprintf(&sb, "  Ownership Type:   %s\n", concentration(owners[0].Share, len(owners)))

	busFactor := dir.BusFactor()
	color := "red"
	switch {
	case busFactor >= 3:
		color = "green"
	case busFactor >= 2:
		color = "yellow"
	}
	fmt.Fprintf(&sb, "  Bus Factor:       [%s]%d[-] (contributors with >=10%% share)\n", color, busFactor)

	return sb.String()
}

func dirLabel(path string) string {
	if path == "." {
		return "(root files)"
	}
	return path
}

func shareColor(share float64) string {
	switch {
	case share >= 60:
		return "green"
	case share >= 30:
		return "cyan"
	case share >= 10:
		return "yellow"
	}
	return "gray"
}

func concentration(topShare float64, authors int) string {
	switch {
	case topShare >= 80:
		return "[yellow]Single Owner[-] (one person owns >80%)"
	case topShare >= 60:
		return "[cyan]Concentrated[-] (primary owner with >60%)"
	case authors <= 2:
		return "[green]Shared[-] (2 primary contributors)"
	case topShare >= 40:
		return "[green]Collaborative[-] (lead contributor <60%)"
	}
	return "[blue]Distributed[-] (many contributors)"
}

// compactCount renders 1234 as 1.2K
func compactCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// CycleSortColumn cycles through sort keys
func (v *OwnershipView) CycleSortColumn() {
	v.sortCol = (v.sortCol + 1) % len(ownershipSortKeys)
}

// ReverseSortOrder reverses the sort order
func (v *OwnershipView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
}

// Root returns the root primitive
func (v *OwnershipView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *OwnershipView) GetFocusable() tview.Primitive {
	return v.list
}
