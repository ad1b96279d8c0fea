package listing

import (
	"character-browser/internal/domain"

	"github.com/charmbracelet/log"
)

// Reducer applies events to a State.
type Reducer struct {
	sorter *Sorter
}

// NewReducer creates a reducer with its own collator cache.
func NewReducer() *Reducer {
	return &Reducer{sorter: NewSorter()}
}

// Reduce returns the state after ev. When the transition needs a fetch the
// request is returned and the caller must issue it; the state already
// records it as in flight.
func (r *Reducer) Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case FilterChanged:
		return r.resetFilters(s, ev)
	case SortChanged:
		s.Sort = s.Sort.Select(ev.Key)
		s.Rows = r.sorter.Sort(s.Buffer, s.Sort, s.Locale)
		return s, nil
	case LocaleChanged:
		s.Locale = ev.Tag
		s.Rows = r.sorter.Sort(s.Buffer, s.Sort, s.Locale)
		return s, nil
	case PageReceived:
		return r.receivePage(s, ev), nil
	case FetchFailed:
		if !s.awaiting(ev.Request) {
			log.Debug("discarding stale failure", "request", ev.Request.ID, "epoch", ev.Request.Epoch, "current_epoch", s.Epoch)
			return s, nil
		}
		s.InFlight = nil
		s.Err = ev.Err
		return s, nil
	case ScrollNearBottom:
		return advance(s)
	case RetryRequested:
		return retry(s)
	default:
		return s, nil
	}
}

// resetFilters starts a new epoch: the buffer is emptied and page 1 is
// requested within the same transition.
func (r *Reducer) resetFilters(s State, ev FilterChanged) (State, *Request) {
	s.Epoch++
	s.Buffer = nil
	s.Rows = nil
	s.HasMore = false
	s.Err = nil
	return issue(s, domain.QueryParams{Page: 1, Status: ev.Status, Species: ev.Species})
}

func (r *Reducer) receivePage(s State, ev PageReceived) State {
	if !s.awaiting(ev.Request) {
		log.Debug("discarding stale page", "request", ev.Request.ID, "page", ev.Request.Params.Page, "epoch", ev.Request.Epoch, "current_epoch", s.Epoch)
		return s
	}

	s.InFlight = nil
	s.Err = nil
	s.HasMore = ev.Page.HasMore

	if ev.Request.Params.Page == 1 {
		s.Buffer = appendUnique(nil, ev.Page.Results)
	} else {
		s.Buffer = appendUnique(s.Buffer, ev.Page.Results)
	}
	s.Rows = r.sorter.Sort(s.Buffer, s.Sort, s.Locale)
	return s
}

// advance requests the next page when the list can grow.
func advance(s State) (State, *Request) {
	if s.InFlight != nil || s.Err != nil || !s.HasMore {
		return s, nil
	}
	next := s.Query
	next.Page++
	return issue(s, next)
}

// retry re-issues the failed request with the same parameters and epoch.
func retry(s State) (State, *Request) {
	if s.Err == nil || s.Last == nil {
		return s, nil
	}
	s.Err = nil
	return issue(s, s.Last.Params)
}

func issue(s State, params domain.QueryParams) (State, *Request) {
	req := &Request{ID: s.NextID, Epoch: s.Epoch, Params: params}
	s.NextID++
	s.Query = params
	s.InFlight = req
	s.Last = req
	return s, req
}

// awaiting reports whether req is the request the state waits for.
func (s State) awaiting(req Request) bool {
	return s.InFlight != nil && req.Epoch == s.Epoch && req.ID == s.InFlight.ID
}

// appendUnique returns buf followed by the characters of page whose IDs are
// not already present. buf's backing array is never written to.
func appendUnique(buf, page []domain.Character) []domain.Character {
	seen := make(map[string]struct{}, len(buf)+len(page))
	out := make([]domain.Character, 0, len(buf)+len(page))
	for _, c := range buf {
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range page {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
