// Package listing holds the state machine behind the character list:
// filtering, sorting, page accumulation and the decision of what to render.
//
// All transitions go through Reducer.Reduce. A Controller owns the only
// State value and applies events one at a time.
package listing

import (
	"character-browser/internal/domain"

	"golang.org/x/text/language"
)

// Request identifies one issued fetch.
type Request struct {
	// ID is unique per issued fetch, retries included.
	ID uint64
	// Epoch is the filter generation the request belongs to.
	Epoch  uint64
	Params domain.QueryParams
}

// State is the complete listing state.
type State struct {
	Query  domain.QueryParams
	Sort   domain.SortSpec
	Locale language.Tag

	// Epoch increases on every filter change. Responses to requests of an
	// older epoch are discarded.
	Epoch uint64
	// NextID is the ID the next issued request gets.
	NextID uint64

	// InFlight is the request whose response is awaited, if any.
	InFlight *Request
	// Last is the most recently issued request; a retry re-issues it.
	Last *Request

	HasMore bool
	Err     error

	// Buffer holds the characters of the current epoch in arrival order.
	Buffer []domain.Character
	// Rows is Buffer ordered by Sort.
	Rows []domain.Character
}

// NewState returns the state at startup: no filters, arrival order, nothing
// fetched yet.
func NewState(locale language.Tag) State {
	return State{
		Query:  domain.QueryParams{Page: 1},
		Sort:   domain.DefaultSortSpec(),
		Locale: locale,
		NextID: 1,
	}
}

// Loading reports whether a fetch is outstanding.
func (s State) Loading() bool {
	return s.InFlight != nil
}

// Event is an input to the reducer.
type Event interface {
	isEvent()
}

// FilterChanged replaces both filters and restarts from page 1.
type FilterChanged struct {
	Status  string
	Species string
}

// SortChanged selects a sort key.
type SortChanged struct {
	Key domain.SortKey
}

// PageReceived delivers the response to Request.
type PageReceived struct {
	Request Request
	Page    domain.CharacterPage
}

// ScrollNearBottom reports that the viewport reached the end of the list.
type ScrollNearBottom struct{}

// FetchFailed delivers the failure of Request.
type FetchFailed struct {
	Request Request
	Err     error
}

// RetryRequested asks to re-issue the failed request.
type RetryRequested struct{}

// LocaleChanged switches the collation used for sorting.
type LocaleChanged struct {
	Tag language.Tag
}

func (FilterChanged) isEvent()    {}
func (SortChanged) isEvent()      {}
func (PageReceived) isEvent()     {}
func (ScrollNearBottom) isEvent() {}
func (FetchFailed) isEvent()      {}
func (RetryRequested) isEvent()   {}
func (LocaleChanged) isEvent()    {}
