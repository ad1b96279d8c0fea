package listing

import (
	"character-browser/internal/domain"

	"golang.org/x/text/language"
)

// Mode is what the view surface shows.
type Mode int

const (
	// ModeError shows only the failure and a retry action.
	ModeError Mode = iota
	// ModeLoading shows the rows so far plus a loading indicator.
	ModeLoading
	// ModeReady shows the rows.
	ModeReady
)

func (m Mode) String() string {
	switch m {
	case ModeError:
		return "error"
	case ModeLoading:
		return "loading"
	case ModeReady:
		return "ready"
	default:
		return "unknown"
	}
}

// View is an immutable snapshot of what to render.
type View struct {
	Mode    Mode
	Err     error
	Rows    []domain.Character
	Query   domain.QueryParams
	Sort    domain.SortSpec
	Locale  language.Tag
	HasMore bool
	Epoch   uint64
}

// Gate decides what s renders as. Errors win over loading, and an error
// view never carries rows.
func Gate(s State) View {
	v := View{
		Query:   s.Query,
		Sort:    s.Sort,
		Locale:  s.Locale,
		HasMore: s.HasMore,
		Epoch:   s.Epoch,
	}
	switch {
	case s.Err != nil:
		v.Mode = ModeError
		v.Err = s.Err
	case s.Loading():
		v.Mode = ModeLoading
		v.Rows = s.Rows
	default:
		v.Mode = ModeReady
		v.Rows = s.Rows
	}
	return v
}
