// Package tui renders the character listing in the terminal.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"character-browser/internal/domain"
	"character-browser/internal/events"
	"character-browser/internal/listing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Lines taken by the title, filter line, blank line and column header
// above the viewport, and by the status and help lines below it.
const (
	headerLines = 4
	footerLines = 2
)

// listController defines what the model needs from the listing controller.
// This keeps the view decoupled from the event loop.
type listController interface {
	SetStatus(value string)
	SetSpecies(value string)
	SetSort(key domain.SortKey)
	SetLocale(tag language.Tag)
	Retry()
}

// translator looks up display strings for the active language.
type translator interface {
	T(key string) string
	Field(value string) string
	SetLocale(id string) (language.Tag, error)
	Locale() language.Tag
	Supported() []language.Tag
}

// viewMsg carries a new listing snapshot into the program.
type viewMsg listing.View

// viewsClosedMsg reports that the view subscription ended.
type viewsClosedMsg struct{}

// Model is the bubbletea model of the listing screen.
type Model struct {
	ctrl     listController
	tr       translator
	views    <-chan events.Event
	tracker  *ScrollTracker
	keys     keyMap
	viewport viewport.Model

	view   listing.View
	width  int
	height int
}

// NewModel creates the listing screen. views must be a subscription to
// events.TopicView; initial is shown until the first snapshot arrives.
func NewModel(ctrl listController, tr translator, views <-chan events.Event, tracker *ScrollTracker, initial listing.View) Model {
	vp := viewport.New(80, 20)
	m := Model{
		ctrl:     ctrl,
		tr:       tr,
		views:    views,
		tracker:  tracker,
		keys:     defaultKeyMap(),
		viewport: vp,
		view:     initial,
		width:    80,
		height:   20 + headerLines + footerLines,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForView(m.views)
}

func waitForView(views <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-views
		if !ok {
			return viewsClosedMsg{}
		}
		v, ok := ev.Data.(listing.View)
		if !ok {
			return nil
		}
		return viewMsg(v)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerLines-footerLines)
		m.refresh()
		return m, nil

	case viewMsg:
		prevEpoch := m.view.Epoch
		m.view = listing.View(msg)
		if m.view.Epoch != prevEpoch {
			m.viewport.GotoTop()
		}
		m.refresh()
		return m, waitForView(m.views)

	case viewsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		return m.scroll(msg)

	case tea.MouseMsg:
		return m.scroll(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Status):
		m.ctrl.SetStatus(nextOption(domain.StatusFilters, m.view.Query.Status))
	case key.Matches(msg, m.keys.Species):
		m.ctrl.SetSpecies(nextOption(domain.SpeciesFilters, m.view.Query.Species))
	case key.Matches(msg, m.keys.SortName):
		m.ctrl.SetSort(domain.SortName)
	case key.Matches(msg, m.keys.SortOrigin):
		m.ctrl.SetSort(domain.SortOrigin)
	case key.Matches(msg, m.keys.SortNone):
		m.ctrl.SetSort(domain.SortNone)
	case key.Matches(msg, m.keys.Language):
		m.switchLanguage()
	case key.Matches(msg, m.keys.Retry):
		if m.view.Mode == listing.ModeError {
			m.ctrl.Retry()
		}
	default:
		return nil, false
	}
	return nil, true
}

// scroll forwards msg to the viewport and reports the attempt to the
// listing, even when the viewport could not move.
func (m Model) scroll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.track()
	if m.isScroll(msg) {
		m.tracker.notify()
	}
	return m, cmd
}

func (m Model) isScroll(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		km := m.viewport.KeyMap
		return key.Matches(msg, km.Down, km.Up, km.PageDown, km.PageUp, km.HalfPageDown, km.HalfPageUp)
	case tea.MouseMsg:
		return msg.Button == tea.MouseButtonWheelDown || msg.Button == tea.MouseButtonWheelUp
	}
	return false
}

func (m *Model) switchLanguage() {
	supported := m.tr.Supported()
	current := slices.Index(supported, m.tr.Locale())
	next := supported[(current+1)%len(supported)]
	tag, err := m.tr.SetLocale(next.String())
	if err != nil {
		log.Warn("could not switch language", "locale", next, "err", err)
		return
	}
	m.ctrl.SetLocale(tag)
	m.refresh()
}

// refresh re-renders the table into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderRows(m.view.Rows))
	m.track()
}

func (m *Model) track() {
	m.tracker.update(listing.Position{
		Offset:         m.viewport.YOffset,
		ViewportHeight: m.viewport.Height,
		ContentHeight:  m.viewport.TotalLineCount(),
	})
}

// nextOption returns the option after current, wrapping around.
func nextOption(options []string, current string) string {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.tr.T("title")))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(m.describeQuery()))
	b.WriteString("\n\n")

	if m.view.Mode == listing.ModeError {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render(fmt.Sprintf("%s: %v", m.tr.T("error"), m.view.Err)))
		b.WriteString(m.tr.T("retry"))
		return b.String()
	}

	b.WriteString(m.renderHeaderRow())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(m.tr.T("help")))
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.view.Mode == listing.ModeLoading:
		return loadingStyle.Render(m.tr.T("loading"))
	case len(m.view.Rows) == 0:
		return metaStyle.Render(m.tr.T("no_results"))
	case !m.view.HasMore:
		return metaStyle.Render(m.tr.T("end_of_list"))
	default:
		return ""
	}
}

func (m Model) describeQuery() string {
	status := m.tr.T("filter_status")
	if m.view.Query.Status != "" {
		status = m.tr.Field(m.view.Query.Status)
	}
	species := m.tr.T("filter_species")
	if m.view.Query.Species != "" {
		species = m.tr.Field(m.view.Query.Species)
	}

	sortBy := m.tr.T("sort_none")
	switch m.view.Sort.Key {
	case domain.SortName:
		sortBy = m.tr.T("sort_name")
	case domain.SortOrigin:
		sortBy = m.tr.T("sort_origin")
	}
	if m.view.Sort.Key != domain.SortNone {
		order := m.tr.T("ascending")
		if m.view.Sort.Order == domain.SortDesc {
			order = m.tr.T("descending")
		}
		sortBy = fmt.Sprintf("%s (%s)", sortBy, order)
	}

	return fmt.Sprintf("%s: %s · %s: %s · %s: %s · %s: %s",
		m.tr.T("status"), status,
		m.tr.T("species"), species,
		m.tr.T("sort_by"), sortBy,
		m.tr.T("language"), m.languageName(),
	)
}

func (m Model) languageName() string {
	base, _ := m.tr.Locale().Base()
	switch base.String() {
	case "en":
		return m.tr.T("english")
	case "de":
		return m.tr.T("german")
	default:
		return m.tr.Locale().String()
	}
}
