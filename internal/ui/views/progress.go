package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/git"
)

const progressWidth = 50

// ProgressView displays scanning progress
type ProgressView struct {
	root        *tview.Flex
	title       *tview.TextView
	progressBar *tview.TextView
	statusText  *tview.TextView
	countText   *tview.TextView
}

// NewProgressView creates a new progress view
func NewProgressView() *ProgressView {
	p := &ProgressView{}

	p.title = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	p.title.SetBackgroundColor(tcell.ColorDarkBlue)

	p.progressBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	p.statusText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	p.countText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p.statusText, 2, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.progressBar, 3, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.countText, 1, 0, false).
		AddItem(nil, 0, 1, false)

	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(container, 60, 0, false).
		AddItem(nil, 0, 1, false)

	p.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p.title, 1, 0, false).
		AddItem(centered, 0, 1, false)

	p.Reset("")
	return p
}

// Reset clears progress before a new scan of source
func (p *ProgressView) Reset(source string) {
	p.title.SetText(fmt.Sprintf("[::b]Scanning %s[-:-:-]", tview.Escape(source)))
	p.SetStatus("Starting git log...")
	p.Update(git.ScanProgress{})
}

// Update renders a progress report
func (p *ProgressView) Update(progress git.ScanProgress) {
	pct := progress.Percent()
	if progress.Done {
		pct = 100
	}

	p.progressBar.SetText(fmt.Sprintf("[green]%s[-]\n%.1f%%", bar(pct, progressWidth), pct))

	count := fmt.Sprintf("[yellow]%d[-] commits parsed", progress.CommitsParsed)
	if progress.TotalEstimate > 0 {
		count = fmt.Sprintf("[yellow]%d[-] / [yellow]%d[-] commits parsed", progress.CommitsParsed, progress.TotalEstimate)
	}
	if progress.Skipped > 0 {
		count += fmt.Sprintf(", [red]%d[-] skipped", progress.Skipped)
	}
	p.countText.SetText(count)

	switch {
	case progress.Done:
		p.SetStatus("Aggregating statistics...")
	case progress.CurrentHash != "":
		p.SetStatus(fmt.Sprintf("Processing %s...", progress.CurrentHash))
	}
}

// SetStatus updates the status message
func (p *ProgressView) SetStatus(status string) {
	p.statusText.SetText("[white]" + tview.Escape(status) + "[-]")
}

// SetError shows a failed scan
func (p *ProgressView) SetError(err error) {
	p.statusText.SetText(fmt.Sprintf("[red]%s[-]\n[gray]R retry, q quit[-]", tview.Escape(err.Error())))
}

// Status returns the status line without color tags
func (p *ProgressView) Status() string {
	return p.statusText.GetText(true)
}

// Count returns the commit count line without color tags
func (p *ProgressView) Count() string {
	return p.countText.GetText(true)
}

// Root returns the root primitive
func (p *ProgressView) Root() tview.Primitive {
	return p.root
}
