package domain

// SortKey names the character field a listing is ordered by.
type SortKey string

const (
	SortNone   SortKey = ""
	SortName   SortKey = "name"
	SortOrigin SortKey = "origin"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortSpec is the active ordering of the listing.
type SortSpec struct {
	Key   SortKey
	Order SortOrder
}

// DefaultSortSpec is the ordering at startup: arrival order.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortNone, Order: SortAsc}
}

// Select returns the SortSpec after the user picks key. Picking the active key
// again flips the order; any other key starts ascending.
func (s SortSpec) Select(key SortKey) SortSpec {
	if key == s.Key {
		if s.Order == SortAsc {
			return SortSpec{Key: key, Order: SortDesc}
		}
		return SortSpec{Key: key, Order: SortAsc}
	}
	return SortSpec{Key: key, Order: SortAsc}
}

// Field returns the value c is ordered by under key.
func (key SortKey) Field(c Character) string {
	switch key {
	case SortName:
		return c.Name
	case SortOrigin:
		return c.OriginName()
	default:
		return ""
	}
}
