package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bigcal/internal/event"
	"bigcal/internal/layout"
)

type tuiState int

const (
	stateLoading tuiState = iota
	stateYear
	stateMonth
	stateDetail
)

var (
	colorAccent = lipgloss.Color("69")
	colorMuted  = lipgloss.Color("241")
)

type eventItem struct {
	event *event.Event
	opts  layout.Options
}

func (i eventItem) Title() string {
	color := layout.ResolveColor(i.event, i.opts.FallbackColor)
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(marker)
	return dot + " " + i.event.Title
}

func (i eventItem) Description() string {
	loc := i.opts.Location
	start := i.event.StartDate(loc).In(loc)
	when := start.Format("Mon Jan 2")
	if i.event.IsMultiDay(loc) {
		when += " - " + i.event.LastDate(loc).In(loc).Format("Mon Jan 2")
	}
	if !i.event.IsAllDay() {
		when += " · " + layout.FormatTimeRange(i.event, loc)
	}
	return when
}

func (i eventItem) FilterValue() string { return i.event.Title }

type yearLoadedMsg struct {
	year int
	data yearData
	err  error
}

type tuiModel struct {
	app *App
	ctx context.Context

	state    tuiState
	year     int
	month    time.Month
	data     yearData
	months   []layout.MonthLayout
	events   list.Model
	viewport viewport.Model
	spinner  spinner.Model
	status   string

	winW int
	winH int
}

func startTUI(app *App) error {
	p := tea.NewProgram(newTUIModel(context.Background(), app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newTUIModel(ctx context.Context, app *App) tuiModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	month := time.January
	if now := app.Now(); now.Year() == app.Year {
		month = now.Month()
	}
	return tuiModel{
		app:     app,
		ctx:     ctx,
		state:   stateLoading,
		year:    app.Year,
		month:   month,
		events:  newEventsListModel(nil, ""),
		spinner: spin,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.year, m.app.Refresh))
}

func (m tuiModel) loadCmd(year int, refresh bool) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		data, err := app.loadYear(ctx, year, refresh)
		return yearLoadedMsg{year: year, data: data, err: err}
	}
}

func (m *tuiModel) setSizes() {
	if m.winW == 0 || m.winH == 0 {
		return
	}
	m.events.SetSize(m.winW-4, m.winH-6)
	m.viewport.Width = m.winW - 4
	m.viewport.Height = m.winH - 8
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW = msg.Width
		m.winH = msg.Height
		m.setSizes()
		if m.state == stateYear {
			m.refreshYearView()
		}
		return m, nil
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case yearLoadedMsg:
		if msg.year != m.year {
			return m, nil
		}
		return m.handleLoaded(msg), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateLoading:
		if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "q" || key.String() == "esc") {
			return m, tea.Quit
		}
		return m, nil
	case stateYear:
		return m.updateYear(msg)
	case stateMonth:
		return m.updateMonth(msg)
	case stateDetail:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "backspace":
				m.state = stateMonth
				return m, nil
			case "q":
				return m, tea.Quit
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m tuiModel) handleLoaded(msg yearLoadedMsg) tuiModel {
	if msg.err != nil {
		m.status = msg.err.Error()
		if m.months == nil {
			m.months = layout.BuildYear(m.year, nil, m.app.LayoutOptions())
		}
	} else {
		m.data = msg.data
		m.months = layout.BuildYear(msg.year, layout.Refs(msg.data.Events), m.app.LayoutOptions())
		m.status = ""
		if len(msg.data.Failed) > 0 {
			m.status = fmt.Sprintf("could not load: %s", strings.Join(msg.data.Failed, ", "))
		}
	}
	m.state = stateYear
	m.viewport = viewport.New(m.viewport.Width, m.viewport.Height)
	m.setSizes()
	m.refreshYearView()
	return m
}

func (m tuiModel) updateYear(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.switchYear(m.year - 1)
	case "right", "l":
		return m.switchYear(m.year + 1)
	case "t":
		now := m.app.Now()
		m.month = now.Month()
		if now.Year() != m.year {
			return m.switchYear(now.Year())
		}
		m.refreshYearView()
		return m, nil
	case "up", "k":
		if m.month > time.January {
			m.month--
		}
		m.refreshYearView()
		return m, nil
	case "down", "j":
		if m.month < time.December {
			m.month++
		}
		m.refreshYearView()
		return m, nil
	case "r":
		m.state = stateLoading
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(m.year, true))
	case "enter", " ":
		m.openMonth()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m tuiModel) switchYear(year int) (tea.Model, tea.Cmd) {
	m.year = year
	m.state = stateLoading
	return m, tea.Batch(m.spinner.Tick, m.loadCmd(year, false))
}

func (m tuiModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.events.FilterState() != list.Filtering {
		switch key.String() {
		case "esc":
			if m.events.FilterState() == list.FilterApplied {
				break
			}
			m.state = stateYear
			m.refreshYearView()
			return m, nil
		case "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.events.SelectedItem().(eventItem); ok {
				m.state = stateDetail
				m.viewport = viewport.New(m.viewport.Width, m.viewport.Height)
				m.setSizes()
				m.viewport.SetContent(detailText(layout.Describe(item.event, m.app.LayoutOptions())))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.events, cmd = m.events.Update(msg)
	return m, cmd
}

func (m *tuiModel) openMonth() {
	if int(m.month) > len(m.months) {
		return
	}
	month := m.months[m.month-1]
	opts := m.app.LayoutOptions()
	items := make([]list.Item, 0)
	for _, e := range month.Events() {
		items = append(items, eventItem{event: e, opts: opts})
	}
	m.events = newEventsListModel(items, fmt.Sprintf("%s %d", month.Month, month.Year))
	m.state = stateMonth
	m.setSizes()
}

// refreshYearView re-renders the grid and scrolls so the selected month
// is on screen.
func (m *tuiModel) refreshYearView() {
	opts := m.app.gridOptions(true)
	opts.Selected = m.month
	m.viewport.SetContent(renderYear(m.months, opts))

	top := 1
	for _, month := range m.months {
		height := strings.Count(renderMonth(month, opts), "\n") + 1
		if month.Month == m.month {
			if top < m.viewport.YOffset {
				m.viewport.SetYOffset(top)
			} else if bottom := top + height; bottom > m.viewport.YOffset+m.viewport.Height {
				m.viewport.SetYOffset(bottom - m.viewport.Height)
			}
			break
		}
		top += height
	}
}

func (m tuiModel) View() string {
	padding := lipgloss.NewStyle().Padding(1, 2)
	status := ""
	if m.status != "" {
		status = "\n\n" + gray(m.status)
	}

	switch m.state {
	case stateLoading:
		return padding.Render(renderHeader(fmt.Sprintf("%d", m.year)) + "\n\n" + m.spinner.View() + " Loading events…")
	case stateYear:
		title := fmt.Sprintf("%d", m.year)
		if m.data.Source != "" {
			title += " " + lipgloss.NewStyle().Foreground(colorMuted).Render("("+m.data.describe()+")")
		}
		return padding.Render(renderHeader(title) + "\n\n" + m.viewport.View() + "\n\n" + gray("←/→: year • ↑/↓: month • enter: open • t: today • r: refresh • q: quit") + status)
	case stateMonth:
		return padding.Render(renderHeader(fmt.Sprintf("%s %d", m.month, m.year)) + "\n\n" + m.events.View() + "\n\n" + gray("enter: details • /: filter • esc: back") + status)
	case stateDetail:
		return padding.Render(renderHeader("Event") + "\n\n" + m.viewport.View() + "\n\n" + gray("esc: back") + status)
	default:
		return ""
	}
}

func renderHeader(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("bigcal") + " · " + lipgloss.NewStyle().Bold(true).Render(title)
}

func newEventsListModel(items []list.Item, title string) list.Model {
	model := list.New(items, list.NewDefaultDelegate(), 0, 0)
	model.Title = title
	model.SetShowStatusBar(false)
	model.SetFilteringEnabled(true)
	model.SetShowHelp(false)
	model.KeyMap.Quit.SetEnabled(false)
	model.SetStatusBarItemName("event", "events")
	return styleList(model)
}

func styleList(model list.Model) list.Model {
	styles := model.Styles
	styles.Title = styles.Title.Foreground(colorAccent).Bold(true)
	styles.FilterPrompt = styles.FilterPrompt.Foreground(colorMuted)
	styles.FilterCursor = styles.FilterCursor.Foreground(colorAccent)
	styles.StatusBar = styles.StatusBar.Foreground(colorMuted)
	styles.PaginationStyle = styles.PaginationStyle.Foreground(colorMuted)
	styles.HelpStyle = styles.HelpStyle.Foreground(colorMuted)
	styles.NoItems = styles.NoItems.Foreground(colorMuted)
	model.Styles = styles

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(colorAccent).Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(colorMuted)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.Foreground(colorMuted)
	model.SetDelegate(delegate)

	return model
}
