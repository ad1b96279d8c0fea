package tui

import (
	"errors"
	"fmt"
	"testing"

	"character-browser/internal/domain"
	"character-browser/internal/events"
	"character-browser/internal/i18n"
	"character-browser/internal/listing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeController struct {
	statuses []string
	species  []string
	sorts    []domain.SortKey
	locales  []language.Tag
	retries  int
}

func (f *fakeController) SetStatus(v string) { f.statuses = append(f.statuses, v) }
func (f *fakeController) SetSpecies(v string) { f.species = append(f.species, v) }
func (f *fakeController) SetSort(k domain.SortKey) { f.sorts = append(f.sorts, k) }
func (f *fakeController) SetLocale(tag language.Tag) { f.locales = append(f.locales, tag) }
func (f *fakeController) Retry() { f.retries++ }

type harness struct {
	model   Model
	ctrl    *fakeController
	broker  *events.Broker
	tracker *ScrollTracker
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tr, err := i18n.NewCatalog("en")
	require.NoError(t, err)

	broker := events.NewBroker()
	tracker := NewScrollTracker(broker)
	ctrl := &fakeController{}
	views := make(chan events.Event)
	m := NewModel(ctrl, tr, views, tracker, listing.View{Mode: listing.ModeLoading})
	h := &harness{model: m, ctrl: ctrl, broker: broker, tracker: tracker}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 16})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func char(id, name, status, species string) domain.Character {
	return domain.Character{
		ID:      id,
		Name:    name,
		Status:  domain.Status(status),
		Species: species,
		Gender:  "Male",
		Origin:  &domain.Origin{Name: "Earth (C-137)"},
	}
}

func manyRows(n int) []domain.Character {
	rows := make([]domain.Character, n)
	for i := range rows {
		rows[i] = char(fmt.Sprint(i+1), fmt.Sprintf("Character %d", i+1), "Alive", "Human")
	}
	return rows
}

func TestViewRendersRows(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{
		Mode:    listing.ModeReady,
		HasMore: true,
		Query:   domain.QueryParams{Page: 1, Status: "Alive"},
		Rows: []domain.Character{
			char("1", "Rick Sanchez", "Alive", "Human"),
			char("2", "Birdperson", "unknown", "Bird-Person"),
		},
	}))

	out := h.model.View()
	assert.Contains(t, out, "Rick and Morty Characters")
	assert.Contains(t, out, "Rick Sanchez")
	assert.Contains(t, out, "Birdperson")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "Bird-Person", "untranslated species shown as received")
	assert.NotContains(t, out, "Loading...")
}

func TestViewShowsLoadingWithRows(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{
		Mode: listing.ModeLoading,
		Rows: []domain.Character{char("1", "Rick Sanchez", "Alive", "Human")},
	}))

	out := h.model.View()
	assert.Contains(t, out, "Rick Sanchez")
	assert.Contains(t, out, "Loading...")
}

func TestViewErrorSuppressesTable(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{Mode: listing.ModeReady, Rows: []domain.Character{char("1", "Rick Sanchez", "Alive", "Human")}}))
	h.send(viewMsg(listing.View{Mode: listing.ModeError, Err: errors.New("network down")}))

	out := h.model.View()
	assert.Contains(t, out, "Error: network down")
	assert.Contains(t, out, "Press r to retry")
	assert.NotContains(t, out, "Rick Sanchez")
}

func TestViewMsgWaitsForNextView(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(viewMsg(listing.View{Mode: listing.ModeReady}))
	assert.NotNil(t, cmd)
}

func TestFilterKeysCycleOptions(t *testing.T) {
	h := newHarness(t)

	h.send(runes("s"))
	h.send(runes("p"))
	assert.Equal(t, []string{"Alive"}, h.ctrl.statuses)
	assert.Equal(t, []string{"Human"}, h.ctrl.species)

	h.send(viewMsg(listing.View{Mode: listing.ModeReady, Query: domain.QueryParams{Page: 1, Status: "unknown", Species: "Cronenberg"}}))
	h.send(runes("s"))
	h.send(runes("p"))
	assert.Equal(t, []string{"Alive", ""}, h.ctrl.statuses, "wraps back to unfiltered")
	assert.Equal(t, []string{"Human", ""}, h.ctrl.species)
}

func TestSortKeys(t *testing.T) {
	h := newHarness(t)
	h.send(runes("n"))
	h.send(runes("o"))
	h.send(runes("x"))
	assert.Equal(t, []domain.SortKey{domain.SortName, domain.SortOrigin, domain.SortNone}, h.ctrl.sorts)
}

func TestRetryOnlyInErrorMode(t *testing.T) {
	h := newHarness(t)
	h.send(runes("r"))
	assert.Equal(t, 0, h.ctrl.retries)

	h.send(viewMsg(listing.View{Mode: listing.ModeError, Err: errors.New("boom")}))
	h.send(runes("r"))
	assert.Equal(t, 1, h.ctrl.retries)
}

func TestLanguageKeySwitchesTranslatorAndCollation(t *testing.T) {
	h := newHarness(t)
	h.send(runes("l"))

	assert.Equal(t, []language.Tag{language.German}, h.ctrl.locales)
	out := h.model.View()
	assert.Contains(t, out, "Rick and Morty Charaktere")
	assert.Contains(t, out, "Deutsch")

	h.send(runes("l"))
	assert.Equal(t, []language.Tag{language.German, language.English}, h.ctrl.locales)
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestScrollingNotifiesListing(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{Mode: listing.ModeReady, HasMore: true, Rows: manyRows(40)}))
	scrolls, unsubscribe := h.broker.Subscribe(events.TopicScroll)
	defer unsubscribe()

	before := h.tracker.Position()
	assert.Equal(t, 0, before.Offset)
	assert.Equal(t, 40, before.ContentHeight)
	assert.Equal(t, 16-headerLines-footerLines, before.ViewportHeight)

	h.send(tea.KeyMsg{Type: tea.KeyPgDown})

	select {
	case <-scrolls:
	default:
		t.Fatal("expected a scroll notification")
	}
	assert.Greater(t, h.tracker.Position().Offset, 0)
}

func TestScrollKeyNotifiesEvenWhenContentFits(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{Mode: listing.ModeReady, HasMore: true, Rows: manyRows(2)}))
	scrolls, unsubscribe := h.broker.Subscribe(events.TopicScroll)
	defer unsubscribe()

	h.send(tea.KeyMsg{Type: tea.KeyDown})

	select {
	case <-scrolls:
	default:
		t.Fatal("expected a scroll notification")
	}
	assert.Equal(t, 0, h.tracker.Position().Offset)
}

func TestFilterResetScrollsToTop(t *testing.T) {
	h := newHarness(t)
	h.send(viewMsg(listing.View{Mode: listing.ModeReady, Epoch: 1, HasMore: true, Rows: manyRows(40)}))
	h.send(tea.KeyMsg{Type: tea.KeyPgDown})
	require.Greater(t, h.tracker.Position().Offset, 0)

	h.send(viewMsg(listing.View{Mode: listing.ModeReady, Epoch: 2, Rows: manyRows(40)}))
	assert.Equal(t, 0, h.tracker.Position().Offset)
}
