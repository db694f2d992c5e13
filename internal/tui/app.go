package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/cardex/internal/browser"
	"github.com/matheuskafuri/cardex/internal/card"
	"github.com/matheuskafuri/cardex/internal/catalog"
	"github.com/matheuskafuri/cardex/internal/search"
	"github.com/matheuskafuri/cardex/internal/session"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

type App struct {
	cat     *catalog.Catalog
	sess    *session.Store
	variant card.Variant

	all     []card.Card // current variant's full snapshot
	visible []card.Card // ranked view of all
	cursor  int
	mode    mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model

	refreshing bool
	freshness  catalog.Freshness
	updatedAt  time.Time
	notice     string
	err        error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Catalog *catalog.Catalog
	Session *session.Store
	Variant card.Variant
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search cards..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cat:         opts.Catalog,
		sess:        opts.Session,
		variant:     opts.Variant,
		searchInput: ti,
		spinner:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadCardsCmd()
}

// loadCardsCmd serves from the snapshot; refreshes go through doRefresh.
func (a *App) loadCardsCmd() tea.Cmd {
	cat := a.cat
	v := a.variant
	return func() tea.Msg {
		res, err := cat.ListCards(context.Background(), v, catalog.ListOpts{})
		if err != nil {
			return errMsg{err: err}
		}
		return cardsLoadedMsg{result: res}
	}
}

func (a *App) doRefresh() tea.Cmd {
	cat := a.cat
	v := a.variant
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		res, err := cat.ListCards(ctx, v, catalog.ListOpts{ForceRefresh: true, RemoteAllowed: true})
		return refreshDoneMsg{result: res, err: err}
	}
}

func (a *App) publishCmd(reveal bool) tea.Cmd {
	if a.sess == nil || len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return nil
	}
	sess := a.sess
	c := a.visible[a.cursor]
	return func() tea.Msg {
		if err := sess.Publish(c.Name, c.ImageURL, reveal); err != nil {
			return errMsg{err: err}
		}
		if !reveal {
			return revealPublishedMsg{name: c.Name + " (hidden)"}
		}
		return revealPublishedMsg{name: c.Name}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// applyQuery recomputes the visible slice from the full snapshot.
func (a *App) applyQuery() {
	q := strings.TrimSpace(a.searchInput.Value())
	if q == "" {
		a.visible = a.all
	} else {
		a.visible = search.Rank(a.all, q)
	}
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error/notice on any keypress
		a.err = nil
		a.notice = ""
		return a.handleKey(msg)

	case cardsLoadedMsg:
		a.all = msg.result.Cards
		a.freshness = msg.result.Freshness
		a.updatedAt = msg.result.UpdatedAt
		a.applyQuery()
		return a, nil

	case refreshDoneMsg:
		a.refreshing = false
		a.all = msg.result.Cards
		a.freshness = msg.result.Freshness
		a.updatedAt = msg.result.UpdatedAt
		if msg.err != nil {
			a.err = msg.err
		} else if len(msg.result.Errors) > 0 {
			a.err = fmt.Errorf("%d source(s) failed: %s", len(msg.result.Errors), strings.Join(msg.result.Errors, "; "))
		}
		a.applyQuery()
		return a, nil

	case revealPublishedMsg:
		a.notice = "published: " + msg.name
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		if s := msg.String(); s == "?" || s == "esc" || s == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "v":
		if a.variant == card.VariantBase {
			a.variant = card.VariantAll
		} else {
			a.variant = card.VariantBase
		}
		a.cursor = 0
		return a, a.loadCardsCmd()
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.doRefresh(), a.spinner.Tick)
		}
		return a, nil
	case "enter":
		return a, a.publishCmd(true)
	case " ":
		return a, a.publishCmd(false)
	case "o":
		if len(a.visible) > 0 && a.cursor < len(a.visible) {
			return a, openBrowserCmd(a.visible[a.cursor].ImageURL)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.applyQuery()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.applyQuery()
	a.cursor = 0
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  cardex")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 1 // gap

	// Header
	headerLeft := headerStyle.Render("cardex")
	headerRight := headerVariantStyle.Render("variant: " + string(a.variant))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Search bar (blank line otherwise)
	bar := ""
	if a.mode == modeSearch || a.searchInput.Value() != "" {
		bar = a.searchInput.View()
	}

	// List pane
	innerListW := listWidth - 4
	listContent := renderList(a.visible, a.cursor, contentHeight, innerListW)
	var listPane string
	if a.mode == modeSearch {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Detail pane
	var selected *card.Card
	if len(a.visible) > 0 && a.cursor < len(a.visible) {
		selected = &a.visible[a.cursor]
	}
	detailContent := renderDetail(selected, detailWidth-4, contentHeight)
	detailPane := detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	status := renderStatusBar(len(a.visible), a.freshness, a.updatedAt, a.width, a.mode == modeSearch, a.refreshing)
	if a.refreshing {
		status = a.spinner.View() + " " + status
	}
	if a.notice != "" {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render(a.notice)
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("cardex")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate card list\n" +
		"  /             Search cards (ranked)\n\n" +
		dim.Render("Actions") + "\n" +
		"  enter         Publish selected card as revealed\n" +
		"  space         Publish selected card hidden\n" +
		"  o             Open card image in browser\n" +
		"  v             Toggle dataset variant (base/all)\n" +
		"  r             Refresh from the catalog\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, helpCardStyle.Render(help))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
