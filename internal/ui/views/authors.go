package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/stats"
)

// AuthorsView lets the user merge author identities
type AuthorsView struct {
	root        *tview.Flex
	list        *tview.List
	detail      *tview.TextView
	info        *tview.TextView
	authors     []*stats.AuthorStats
	plan        *mergePlan
	summary     *stats.Summary
	onMerge     func(aliases map[string]string)
	selectedIdx int
}

// NewAuthorsView creates the merge view; onMerge receives alias -> primary
func NewAuthorsView(onMerge func(aliases map[string]string)) *AuthorsView {
	v := &AuthorsView{
		plan:    newMergePlan(),
		onMerge: onMerge,
	}

	instructions := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]MERGE AUTHORS:[-] [Space[] select  [m[] merge  [a[] apply  [c[] clear")

	v.list = tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	v.list.SetBorder(true).SetTitle(" Authors ")

	v.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	v.detail.SetBorder(true).SetTitle(" Author Details ")

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	content := tview.NewFlex().
		AddItem(v.list, 45, 0, true).
		AddItem(v.detail, 0, 1, false)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructions, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.list.SetChangedFunc(func(idx int, _, _ string, _ rune) {
		v.selectedIdx = idx
		if author := v.current(); author != nil {
			v.detail.SetText(v.authorDetail(author))
		}
	})
	v.list.SetInputCapture(v.handleInput)

	return v
}

func (v *AuthorsView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case ' ':
		v.Select()
	case 'm', 'M':
		v.Merge()
	case 'c', 'C':
		v.Clear()
	case 'a', 'A':
		v.Apply()
	default:
		return event
	}
	return nil
}

func (v *AuthorsView) current() *stats.AuthorStats {
	if v.selectedIdx < 0 || v.selectedIdx >= len(v.authors) {
		return nil
	}
	return v.authors[v.selectedIdx]
}

// Select toggles the highlighted author in the batch selection
func (v *AuthorsView) Select() {
	if author := v.current(); author != nil {
		v.plan.Toggle(author.Author)
		v.render()
	}
}

// Merge merges the batch selection, or marks the highlighted author as
// primary or alias when fewer than two are selected
func (v *AuthorsView) Merge() {
	if !v.plan.MergeSelected(v.authors) {
		if author := v.current(); author != nil {
			v.plan.Mark(author.Author)
		}
	}
	v.render()
}

// Clear drops selections and pending merges
func (v *AuthorsView) Clear() {
	v.plan.Clear()
	v.render()
}

// Apply hands pending merges to onMerge
func (v *AuthorsView) Apply() {
	aliases := v.plan.Aliases()
	if len(aliases) == 0 || v.onMerge == nil {
		return
	}
	v.plan.Clear()
	v.onMerge(aliases)
}

// SetCurrent highlights the author at index
func (v *AuthorsView) SetCurrent(index int) {
	v.selectedIdx = index
	v.list.SetCurrentItem(index)
}

// Refresh updates the view with new data
func (v *AuthorsView) Refresh(s *stats.Summary) {
	v.summary = s
	v.render()
}

func (v *AuthorsView) render() {
	// AddItem fires the changed func, which moves selectedIdx
	idx := v.selectedIdx

	v.list.Clear()
	if v.summary == nil {
		return
	}

	v.authors = v.summary.Leaderboard("commits", false)

	pending := 0
	for _, author := range v.authors {
		label := tview.Escape(displayName(author))
		status := ""

		if v.plan.Selected(author.Author) {
			label = "[blue]◉ " + label + "[-]"
			status = " [blue]SELECTED[-]"
		}
		if primary, ok := v.plan.Target(author.Author); ok {
			if primary == author.Author {
				label = "[green]" + tview.Escape(displayName(author)) + "[-]"
				status = " [green]★ PRIMARY[-]"
			} else {
				pending++
				label = "[yellow]" + tview.Escape(displayName(author)) + "[-]"
				status = " [yellow]→ " + tview.Escape(v.nameOf(primary)) + "[-]"
			}
		}

		secondary := fmt.Sprintf("<%s> %d commits%s", tview.Escape(author.Email), author.Commits, status)
		v.list.AddItem(label, secondary, 0, nil)
	}

	var help string
	switch {
	case len(v.plan.selected) >= 2:
		help = fmt.Sprintf("[m[] MERGE %d selected | [c[] clear", len(v.plan.selected))
	case pending > 0:
		help = fmt.Sprintf("[green][a[] APPLY %d merge(s)[-] | [m[] add more | [c[] clear", pending)
	case v.plan.current != "":
		help = "[m[] add alias to PRIMARY | [a[] apply | [c[] clear"
	default:
		help = "[m[] mark as PRIMARY (first), then [m[] on aliases"
	}
	v.info.SetText(fmt.Sprintf("[yellow]%d[-] authors | %s", len(v.authors), help))

	v.selectedIdx = min(max(idx, 0), max(len(v.authors)-1, 0))
	if author := v.current(); author != nil {
		v.list.SetCurrentItem(v.selectedIdx)
		v.detail.SetText(v.authorDetail(author))
	} else {
		v.detail.Clear()
	}
}

func (v *AuthorsView) nameOf(author string) string {
	for _, a := range v.authors {
		if a.Author == author {
			return displayName(a)
		}
	}
	return author
}

func (v *AuthorsView) authorDetail(author *stats.AuthorStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[::b]%s[-:-:-]\n", tview.Escape(displayName(author)))
	fmt.Fprintf(&sb, "Email: [cyan]%s[-]\n\n", tview.Escape(author.Email))

	sb.WriteString("[yellow]━━━ Statistics ━━━[-]\n\n")
	fmt.Fprintf(&sb, "  Commits:     [cyan]%d[-]\n", author.Commits)
	fmt.Fprintf(&sb, "  Additions:   [green]+%d[-]\n", author.Additions)
	fmt.Fprintf(&sb, "  Deletions:   [red]-%d[-]\n", author.Deletions)
	fmt.Fprintf(&sb, "  Files:       [cyan]%d[-]\n", len(author.FilesTouched))

	if !author.FirstCommit.IsZero() {
		fmt.Fprintf(&sb, "\n  First:       [gray]%s[-]\n", author.FirstCommit.Format("2006-01-02"))
		fmt.Fprintf(&sb, "  Last:        [gray]%s[-]\n", author.LastCommit.Format("2006-01-02"))
	}

	sb.WriteString("\n[yellow]━━━ Similar Authors ━━━[-]\n\n")
	if similar := similarAuthors(v.authors, author); len(similar) > 0 {
		for _, s := range similar {
			fmt.Fprintf(&sb, "  • %s\n", tview.Escape(s.Author))
		}
		sb.WriteString("\n[gray]Select them with [Space[] and press [m[] to merge[-]\n")
	} else {
		sb.WriteString("  [gray]No similar authors found[-]\n")
	}

	if primary, ok := v.plan.Target(author.Author); ok {
		sb.WriteString("\n[yellow]━━━ Merge Status ━━━[-]\n\n")
		if primary == author.Author {
			sb.WriteString("  [green]This is the PRIMARY identity[-]\n")
			sb.WriteString("  Other authors will be merged into this one.\n")
		} else {
			fmt.Fprintf(&sb, "  [yellow]Will be merged into: %s[-]\n", tview.Escape(v.nameOf(primary)))
		}
	}

	return sb.String()
}

func displayName(a *stats.AuthorStats) string {
	if a.Name != "" {
		return a.Name
	}
	return a.Author
}

// Info returns the help line without color tags
func (v *AuthorsView) Info() string {
	return v.info.GetText(true)
}

// Root returns the root primitive
func (v *AuthorsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *AuthorsView) GetFocusable() tview.Primitive {
	return v.list
}
