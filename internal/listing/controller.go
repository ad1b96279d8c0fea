package listing

import (
	"context"
	"errors"
	"sync"

	"character-browser/internal/domain"
	"character-browser/internal/events"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// errNoPage is reported when a fetcher returns neither a page nor an error.
var errNoPage = errors.New("fetcher returned no page")

// Fetcher defines the interface for a component that can fetch a page of
// characters. This allows for mocking in tests.
type Fetcher interface {
	FetchCharacters(ctx context.Context, params domain.QueryParams) (*domain.CharacterPage, error)
}

// Options configures a Controller.
type Options struct {
	Locale  language.Tag
	Status  string
	Species string
	// Signal is optional; without it pages only advance through Dispatch.
	Signal          ViewportSignal
	ScrollThreshold int
}

// statusSelected and speciesSelected change one filter and keep the other.
// The loop resolves them into FilterChanged against the current state.
type statusSelected struct{ value string }
type speciesSelected struct{ value string }

func (statusSelected) isEvent()  {}
func (speciesSelected) isEvent() {}

// Controller is the event loop of the listing. It owns the State, applies
// events one at a time and runs fetches in the background.
type Controller struct {
	fetcher Fetcher
	broker  *events.Broker
	reducer *Reducer
	opts    Options

	state State

	events   chan Event
	stopChan chan struct{} // Used for graceful shutdown
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup

	mu   sync.RWMutex
	view View
}

// NewController creates a new listing controller. Views are published on
// broker under events.TopicView.
func NewController(fetcher Fetcher, broker *events.Broker, opts Options) *Controller {
	if opts.ScrollThreshold < 0 {
		opts.ScrollThreshold = DefaultScrollThreshold
	}
	state := NewState(opts.Locale)
	// The first page is requested as soon as Start runs.
	initial := Gate(state)
	initial.Mode = ModeLoading
	return &Controller{
		fetcher:  fetcher,
		broker:   broker,
		reducer:  NewReducer(),
		opts:     opts,
		state:    state,
		events:   make(chan Event, 16),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		view:     initial,
	}
}

// Start requests the first page and processes events until ctx is done or
// Stop is called. It is a long-running, blocking method and returns only
// after every fetch it started has returned.
func (c *Controller) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		close(c.done)
		c.wg.Wait()
	}()

	log.Info("listing controller starting", "status", c.opts.Status, "species", c.opts.Species, "locale", c.opts.Locale)

	if c.opts.Signal != nil {
		advancer := NewAdvancer(c.opts.Signal, c.opts.ScrollThreshold, c.Dispatch)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			advancer.Run(ctx)
		}()
	}

	c.apply(ctx, FilterChanged{Status: c.opts.Status, Species: c.opts.Species})

	for {
		select {
		case ev := <-c.events:
			c.apply(ctx, ev)
		case <-c.stopChan:
			log.Info("listing controller stopped")
			return nil
		case <-ctx.Done():
			log.Info("listing controller context cancelled")
			return nil
		}
	}
}

// Stop ends the event loop.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

// Dispatch queues ev for the loop. Events sent after the loop ended are
// dropped.
func (c *Controller) Dispatch(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// SetStatus changes the status filter and restarts from page 1.
func (c *Controller) SetStatus(value string) { c.Dispatch(statusSelected{value: value}) }

// SetSpecies changes the species filter and restarts from page 1.
func (c *Controller) SetSpecies(value string) { c.Dispatch(speciesSelected{value: value}) }

// SetSort selects a sort key; selecting the active key flips the order.
func (c *Controller) SetSort(key domain.SortKey) { c.Dispatch(SortChanged{Key: key}) }

// SetLocale re-collates the rows for tag.
func (c *Controller) SetLocale(tag language.Tag) { c.Dispatch(LocaleChanged{Tag: tag}) }

// Retry re-issues the failed request.
func (c *Controller) Retry() { c.Dispatch(RetryRequested{}) }

// View returns the most recently published view.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *Controller) apply(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case statusSelected:
		ev = FilterChanged{Status: e.value, Species: c.state.Query.Species}
	case speciesSelected:
		ev = FilterChanged{Status: c.state.Query.Status, Species: e.value}
	}

	next, req := c.reducer.Reduce(c.state, ev)
	c.state = next
	if req != nil {
		c.fetch(ctx, *req)
	}

	view := Gate(c.state)
	c.mu.Lock()
	c.view = view
	c.mu.Unlock()
	c.broker.Publish(events.TopicView, view)
}

// fetch runs req in the background and feeds the outcome back to the loop.
func (c *Controller) fetch(ctx context.Context, req Request) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		page, err := c.fetcher.FetchCharacters(ctx, req.Params)
		if err == nil && page == nil {
			err = errNoPage
		}
		if err != nil {
			if ctx.Err() == nil {
				log.Warn("fetch failed", "request", req.ID, "page", req.Params.Page, "err", err)
			}
			c.Dispatch(FetchFailed{Request: req, Err: err})
			return
		}
		log.Debug("page received", "request", req.ID, "page", req.Params.Page, "results", len(page.Results), "has_more", page.HasMore)
		c.Dispatch(PageReceived{Request: req, Page: *page})
	}()
}
