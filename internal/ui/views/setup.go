package views

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/git"
	"github.com/audi70r/logstat/internal/scan"
)

// Setup errors.
var (
	ErrNoSource   = errors.New("enter a repository or log file")
	ErrBadDate    = errors.New("dates must be YYYY-MM-DD")
	ErrDateOrder  = errors.New("'Until' must not be before 'Since'")
	ErrNotGitRepo = errors.New("directory is not a git repository")
)

// Setup is what the user picked on the setup page
type Setup struct {
	Source  scan.Source
	Since   string
	Until   string
	Authors []string
}

// ParseSetup validates the raw form fields. path is a repository directory
// or a saved git log file; dates are YYYY-MM-DD and may be empty.
func ParseSetup(path, since, until, authors string) (Setup, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Setup{}, ErrNoSource
	}

	info, err := os.Stat(path)
	if err != nil {
		return Setup{}, err
	}

	setup := Setup{Since: strings.TrimSpace(since), Until: strings.TrimSpace(until)}
	if info.IsDir() {
		if !git.IsGitRepo(path) {
			return Setup{}, fmt.Errorf("%w: %s", ErrNotGitRepo, filepath.Base(path))
		}
		setup.Source = scan.Source{Repo: path}
	} else {
		setup.Source = scan.Source{File: path}
	}

	var from, to time.Time
	if setup.Since != "" {
		if from, err = time.Parse("2006-01-02", setup.Since); err != nil {
			return Setup{}, ErrBadDate
		}
	}
	if setup.Until != "" {
		if to, err = time.Parse("2006-01-02", setup.Until); err != nil {
			return Setup{}, ErrBadDate
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return Setup{}, ErrDateOrder
	}

	for _, a := range strings.Split(authors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			setup.Authors = append(setup.Authors, a)
		}
	}

	return setup, nil
}

// SetupView picks the source and date range before a scan
type SetupView struct {
	root         *tview.Pages
	form         *tview.Form
	sourceInput  *tview.InputField
	sinceInput   *tview.InputField
	untilInput   *tview.InputField
	authorsInput *tview.InputField
	errorText    *tview.TextView
	app          *tview.Application
	onSubmit     func(Setup)
	onCancel     func()
}

// NewSetupView creates the setup page prefilled with initial
func NewSetupView(app *tview.Application, initial Setup, onSubmit func(Setup), onCancel func()) *SetupView {
	s := &SetupView{app: app, onSubmit: onSubmit, onCancel: onCancel}

	source := initial.Source.File
	if source == "" {
		source = initial.Source.Repo
	}

	title := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]logstat - git log statistics[-:-:-]")
	title.SetBackgroundColor(tcell.ColorDarkBlue)

	s.sourceInput = tview.NewInputField().SetLabel("Source:  ").SetText(source).SetFieldWidth(50)
	s.sinceInput = tview.NewInputField().SetLabel("Since:   ").SetText(initial.Since).SetFieldWidth(12).
		SetPlaceholder("YYYY-MM-DD")
	s.untilInput = tview.NewInputField().SetLabel("Until:   ").SetText(initial.Until).SetFieldWidth(12).
		SetPlaceholder("YYYY-MM-DD")
	s.authorsInput = tview.NewInputField().SetLabel("Authors: ").SetText(strings.Join(initial.Authors, ", ")).
		SetFieldWidth(50).SetPlaceholder("comma separated, empty for everyone")

	s.form = tview.NewForm().
		AddFormItem(s.sourceInput).
		AddFormItem(s.sinceInput).
		AddFormItem(s.untilInput).
		AddFormItem(s.authorsInput).
		AddButton("Browse", s.showDirBrowser).
		AddButton("Scan", s.submit).
		AddButton("Back", s.cancel)
	s.form.SetBorder(true).SetTitle(" Scan ")

	s.errorText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Tab[-] Next field  [yellow]Enter[-] Press button  [yellow]Esc[-] Back")
	help.SetBackgroundColor(tcell.ColorDarkBlue)

	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(s.form, 13, 0, true).
			AddItem(s.errorText, 2, 0, false).
			AddItem(nil, 0, 1, false), 72, 0, true).
		AddItem(nil, 0, 1, false)

	main := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(centered, 0, 1, true).
		AddItem(help, 1, 0, false)

	s.form.SetCancelFunc(s.cancel)

	s.root = tview.NewPages()
	s.root.AddPage("main", main, true, true)
	return s
}

func (s *SetupView) submit() {
	setup, err := ParseSetup(s.sourceInput.GetText(), s.sinceInput.GetText(),
		s.untilInput.GetText(), s.authorsInput.GetText())
	if err != nil {
		s.ShowError(err.Error())
		return
	}
	s.errorText.Clear()
	if s.onSubmit != nil {
		s.onSubmit(setup)
	}
}

func (s *SetupView) cancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}

func (s *SetupView) showDirBrowser() {
	dirList := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	dirList.SetBorder(true)

	browserHelp := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Enter[-] Open folder  [yellow]Space[-] Pick  [yellow]Esc[-] Close")
	browserHelp.SetBackgroundColor(tcell.ColorDarkBlue)

	current, err := filepath.Abs(s.sourceInput.GetText())
	if info, statErr := os.Stat(current); err != nil || statErr != nil || !info.IsDir() {
		current, _ = os.Getwd()
	}

	var entries []string
	var populate func(path string)
	populate = func(path string) {
		dirList.Clear()
		entries = entries[:0]
		dirList.SetTitle(fmt.Sprintf(" %s ", path))
		current = path

		dirList.AddItem("..", "Go up one directory", 0, nil)
		entries = append(entries, "..")

		children, err := os.ReadDir(path)
		if err != nil {
			return
		}
		for _, child := range children {
			if !child.IsDir() || strings.HasPrefix(child.Name(), ".") {
				continue
			}
			if git.IsGitRepo(filepath.Join(path, child.Name())) {
				dirList.AddItem("[cyan]📦 "+tview.Escape(child.Name())+"[-]", "[Space[] to pick this repo", 0, nil)
			} else {
				dirList.AddItem("   "+tview.Escape(child.Name()), "Directory", 0, nil)
			}
			entries = append(entries, child.Name())
		}
	}
	populate(current)

	browserBox := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(dirList, 0, 1, true).
		AddItem(browserHelp, 1, 0, false)
	browserBox.SetBorder(true).SetTitle(" Select Repository ")

	modal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(browserBox, 24, 0, true).
			AddItem(nil, 0, 1, false), 80, 0, true).
		AddItem(nil, 0, 1, false)

	closeModal := func() {
		s.root.RemovePage("browser")
		s.app.SetFocus(s.form)
	}

	dirList.SetSelectedFunc(func(idx int, _, _ string, _ rune) {
		if idx < 0 || idx >= len(entries) {
			return
		}
		if entries[idx] == ".." {
			populate(filepath.Dir(current))
			return
		}
		populate(filepath.Join(current, entries[idx]))
	})

	dirList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEsc:
			closeModal()
			return nil
		case event.Key() == tcell.KeyRune && event.Rune() == ' ':
			idx := dirList.GetCurrentItem()
			if idx < 0 || idx >= len(entries) {
				return nil
			}
			picked := current
			if entries[idx] != ".." {
				picked = filepath.Join(current, entries[idx])
			}
			if git.IsGitRepo(picked) {
				s.sourceInput.SetText(picked)
				closeModal()
			}
			return nil
		}
		return event
	})

	s.root.AddPage("browser", modal, true, true)
	s.app.SetFocus(dirList)
}

// ShowError displays an error message
func (s *SetupView) ShowError(msg string) {
	s.errorText.SetText("[red]" + tview.Escape(msg) + "[-]")
}

// Root returns the root primitive
func (s *SetupView) Root() tview.Primitive {
	return s.root
}

// GetFocusable returns the focusable component
func (s *SetupView) GetFocusable() tview.Primitive {
	return s.form
}
