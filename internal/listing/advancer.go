package listing

import (
	"context"

	"character-browser/internal/events"
)

// DefaultScrollThreshold is how close to the bottom, in viewport units, the
// viewport must be before the next page is requested.
const DefaultScrollThreshold = 50

// Position describes the scroll state of the viewport showing the list.
type Position struct {
	// Offset is the index of the first visible unit.
	Offset int
	// ViewportHeight is the number of visible units.
	ViewportHeight int
	// ContentHeight is the total number of units in the list.
	ContentHeight int
}

// ViewportSignal is the source of scroll notifications. Notifications carry
// no payload; Position is read when one arrives.
type ViewportSignal interface {
	Subscribe() (<-chan events.Event, func())
	Position() Position
}

// Advancer turns scroll notifications into ScrollNearBottom events.
// Whether a page is actually requested is up to the reducer.
type Advancer struct {
	signal    ViewportSignal
	threshold int
	dispatch  func(Event)
}

// NewAdvancer creates an advancer that calls dispatch when the viewport is
// within threshold units of the bottom.
func NewAdvancer(signal ViewportSignal, threshold int, dispatch func(Event)) *Advancer {
	return &Advancer{signal: signal, threshold: threshold, dispatch: dispatch}
}

// NearBottom reports whether p is within the threshold of the end.
func (a *Advancer) NearBottom(p Position) bool {
	return p.ViewportHeight+p.Offset >= p.ContentHeight-a.threshold
}

// Run listens until ctx ends, then releases its subscription.
func (a *Advancer) Run(ctx context.Context) {
	notify, unsubscribe := a.signal.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-notify:
			if !ok {
				return
			}
			if a.NearBottom(a.signal.Position()) {
				a.dispatch(ScrollNearBottom{})
			}
		}
	}
}
