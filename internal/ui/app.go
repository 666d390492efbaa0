// Package ui is the interactive terminal browser for log statistics.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/logstat/internal/config"
	"github.com/audi70r/logstat/internal/git"
	"github.com/audi70r/logstat/internal/scan"
	"github.com/audi70r/logstat/internal/stats"
	"github.com/audi70r/logstat/internal/ui/views"
)

// progressEvery throttles redraws while parsing
const progressEvery = 25

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	cfg    *config.Config
	logger *slog.Logger
	source scan.Source
	opts   scan.Options
	result *scan.Result

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	setupView    *views.SetupView
	progressView *views.ProgressView
	mainView     *MainView
}

// NewApp creates the application for src; opts carries the resolved
// parser, filter and alias settings
func NewApp(cfg *config.Config, src scan.Source, opts scan.Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		cfg:    cfg,
		logger: logger,
		source: src,
		opts:   opts,
	}
	a.opts.Aliases = maps.Clone(opts.Aliases)
	if a.opts.Aliases == nil {
		a.opts.Aliases = make(map[string]string)
	}

	a.setupView = views.NewSetupView(a.tview, views.Setup{
		Source:  src,
		Since:   cfg.Filter.Since,
		Until:   cfg.Filter.Until,
		Authors: cfg.Filter.Authors,
	}, a.onSetupComplete, a.onSetupCancel)
	a.progressView = views.NewProgressView()
	a.mainView = NewMainView(a.tview, cfg, a.onRescan, a.onMergeAuthors)

	a.pages.AddPage("setup", a.setupView.Root(), true, false)
	a.pages.AddPage("progress", a.progressView.Root(), true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	a.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := a.pages.GetFrontPage(); name == "progress" {
			return a.handleProgressInput(event)
		}
		return event
	})

	a.tview.SetRoot(a.pages, true)
	return a
}

// Run scans the source and blocks until the user quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	stop := context.AfterFunc(ctx, a.tview.Stop)
	defer stop()

	a.startScan()
	err := a.tview.Run()

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()

	return err
}

// startScan cancels any running scan and starts a new one in the background
func (a *App) startScan() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.mu.Unlock()

	src, opts := a.source, a.opts
	opts.Aliases = maps.Clone(a.opts.Aliases)
	opts.OnProgress = func(p git.ScanProgress) {
		if !p.Done && p.CommitsParsed%progressEvery != 0 {
			return
		}
		a.tview.QueueUpdateDraw(func() {
			if ctx.Err() == nil {
				a.progressView.Update(p)
			}
		})
	}

	a.progressView.Reset(src.Label())
	a.pages.SwitchToPage("progress")
	a.tview.SetFocus(a.progressView.Root())

	go func() {
		result, err := scan.Run(ctx, src, opts)
		if err != nil {
			a.logger.Error("scan failed", "source", src.Label(), "error", err)
		}

		a.tview.QueueUpdateDraw(func() {
			if ctx.Err() != nil {
				// Superseded by a newer scan or shutting down
				return
			}
			if err != nil {
				a.progressView.SetError(fmt.Errorf("scan %s: %w", src.Label(), err))
				return
			}

			a.result = result
			a.mainView.SetData(result)
			a.pages.SwitchToPage("main")
			a.tview.SetFocus(a.mainView.GetFocusable())
		})
	}()
}

func (a *App) handleProgressInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.tview.Stop()
		return nil
	case 'R':
		a.onRescan()
		return nil
	}
	return event
}

func (a *App) onRescan() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()

	a.pages.SwitchToPage("setup")
	a.tview.SetFocus(a.setupView.GetFocusable())
}

func (a *App) onSetupCancel() {
	if a.result == nil {
		a.tview.Stop()
		return
	}
	a.pages.SwitchToPage("main")
	a.tview.SetFocus(a.mainView.GetFocusable())
}

func (a *App) onSetupComplete(setup views.Setup) {
	a.cfg.Filter.Since = setup.Since
	a.cfg.Filter.Until = setup.Until
	a.cfg.Filter.Authors = setup.Authors
	if err := a.cfg.Validate(); err != nil {
		a.setupView.ShowError(err.Error())
		return
	}

	aliases := a.opts.Aliases
	a.opts = scan.OptionsFromConfig(a.cfg, a.logger)
	a.opts.Aliases = aliases
	a.source = setup.Source

	a.startScan()
}

func (a *App) onMergeAuthors(aliases map[string]string) {
	if a.result == nil || len(aliases) == 0 {
		return
	}

	a.result.Summary.MergeAuthors(aliases)
	maps.Copy(a.opts.Aliases, aliases)
	a.logger.Debug("merged authors", "aliases", len(aliases))

	a.mainView.RefreshAllViews()
	a.mainView.FocusAuthorsView()
}

// view is one page of the main view
type view interface {
	Root() tview.Primitive
	Refresh(s *stats.Summary)
}

type focusable interface {
	GetFocusable() tview.Primitive
}

type sortable interface {
	CycleSortColumn()
	ReverseSortOrder()
}

// MainView is the main statistics display view
type MainView struct {
	root      *tview.Flex
	menuList  *tview.List
	viewPages *tview.Pages
	statusBar *tview.TextView
	header    *tview.TextView
	app       *tview.Application
	onRescan  func()

	overviewView *views.OverviewView
	authorsView  *views.AuthorsView
	names        []string
	views        map[string]view

	currentView string
	result      *scan.Result
}

// NewMainView creates the main statistics view
func NewMainView(app *tview.Application, cfg *config.Config, onRescan func(), onMerge func(map[string]string)) *MainView {
	m := &MainView{
		app:      app,
		onRescan: onRescan,
		views:    make(map[string]view),
	}

	m.overviewView = views.NewOverviewView()
	m.authorsView = views.NewAuthorsView(onMerge)

	m.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.header.SetBackgroundColor(tcell.ColorDarkBlue)

	m.menuList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	m.menuList.SetBorder(true).SetTitle(" Views ")

	m.viewPages = tview.NewPages()
	m.viewPages.SetBorder(true)

	m.add("Overview", m.overviewView)
	m.add("Leaderboard", views.NewLeaderboardView(cfg.Display.MaxAuthors))
	m.add("Timeline", views.NewTimelineView(cfg.Display.RollingWindow, cfg.Display.SparklineWidth))
	m.add("Work Hours", views.NewHeatmapView(cfg.Timezone))
	m.add("Top Files", views.NewFilesView(cfg.Display.MaxFiles))
	m.add("Hotspots", views.NewHotspotsView(cfg.Display.MaxFiles))
	m.add("Ownership", views.NewOwnershipView())
	m.add("Authors", m.authorsView)

	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)

	m.switchView(m.names[0])

	content := tview.NewFlex().
		AddItem(m.menuList, 18, 0, true).
		AddItem(m.viewPages, 0, 1, false)

	m.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(m.statusBar, 1, 0, false)

	m.root.SetInputCapture(m.handleInput)
	return m
}

// add registers a view under name with shortcut 1, 2, ...
func (m *MainView) add(name string, v view) {
	m.names = append(m.names, name)
	m.views[name] = v

	shortcut := rune('0' + len(m.names))
	m.menuList.AddItem(name, "", shortcut, func() {
		m.switchView(name)
	})
	m.viewPages.AddPage(name, v.Root(), true, len(m.names) == 1)
}

func (m *MainView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		m.toggleFocus()
		return nil
	case tcell.KeyEsc:
		if m.app.GetFocus() != m.menuList {
			m.app.SetFocus(m.menuList)
			return nil
		}
	}

	switch event.Rune() {
	case 'q', 'Q':
		m.app.Stop()
		return nil
	case 'R':
		if m.onRescan != nil {
			m.onRescan()
		}
		return nil
	case 's', 'S':
		m.sort(sortable.CycleSortColumn)
		return nil
	case 'r':
		m.sort(sortable.ReverseSortOrder)
		return nil
	}

	return event
}

func (m *MainView) toggleFocus() {
	if m.app.GetFocus() != m.menuList {
		m.app.SetFocus(m.menuList)
		return
	}
	if f, ok := m.views[m.currentView].(focusable); ok {
		m.app.SetFocus(f.GetFocusable())
	}
}

// sort applies change to the current view if it sorts, then redraws it
func (m *MainView) sort(change func(sortable)) {
	v := m.views[m.currentView]
	s, ok := v.(sortable)
	if !ok || m.result == nil {
		return
	}
	change(s)
	v.Refresh(m.result.Summary)
}

func (m *MainView) switchView(name string) {
	m.currentView = name
	m.viewPages.SwitchToPage(name)
	m.viewPages.SetTitle(" " + name + " ")
	m.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (m *MainView) updateStatusBar() {
	baseControls := "[yellow]Tab[-] Focus  [yellow]↑↓[-] Navigate  [yellow]R[-] Rescan  [yellow]q[-] Quit"

	var viewControls string
	if m.currentView == "Authors" {
		viewControls = "[yellow]Space[-] Select  [yellow]m[-] Merge  [yellow]a[-] Apply  [yellow]c[-] Clear  "
	} else if _, ok := m.views[m.currentView].(sortable); ok {
		viewControls = "[yellow]s[-] Sort  [yellow]r[-] Reverse  "
	}

	m.statusBar.SetText(viewControls + baseControls)
}

// SetData shows a scan result in every view
func (m *MainView) SetData(result *scan.Result) {
	m.result = result

	s := result.Summary
	head := ""
	if result.Head != "" {
		head = fmt.Sprintf(" @ %s", result.Head)
	}
	dates := "no commits"
	if !s.DateRange.IsZero() {
		dates = fmt.Sprintf("%s to %s",
			s.DateRange.Since.Format("2006-01-02"),
			s.DateRange.Until.Format("2006-01-02"))
	}
	m.header.SetText(fmt.Sprintf("[::b]logstat[-:-:-] - %s%s (%s) - %d commits by %d authors",
		tview.Escape(result.Source), head, dates, s.TotalCommits, s.TotalAuthors))

	skipped := 0
	if result.Report != nil {
		skipped = len(result.Report.Skipped)
	}
	m.overviewView.SetSkipped(skipped)

	for _, name := range m.names {
		m.views[name].Refresh(s)
	}
}

// Header returns the header line without color tags
func (m *MainView) Header() string {
	return m.header.GetText(true)
}

// RefreshAllViews redraws every view after author merges
func (m *MainView) RefreshAllViews() {
	if m.result == nil {
		return
	}
	m.SetData(m.result)
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.root
}

// GetFocusable returns the focusable component
func (m *MainView) GetFocusable() tview.Primitive {
	return m.menuList
}

// FocusAuthorsView switches to the Authors view and focuses it
func (m *MainView) FocusAuthorsView() {
	m.switchView("Authors")
	m.app.SetFocus(m.authorsView.GetFocusable())
}
