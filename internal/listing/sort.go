package listing

import (
	"slices"

	"character-browser/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders characters with the collation rules of a language.
// It is not safe for concurrent use.
type Sorter struct {
	collators map[language.Tag]*collate.Collator
}

// NewSorter returns a Sorter with no collators built yet.
func NewSorter() *Sorter {
	return &Sorter{collators: make(map[language.Tag]*collate.Collator)}
}

func (s *Sorter) collator(tag language.Tag) *collate.Collator {
	c, ok := s.collators[tag]
	if !ok {
		c = collate.New(tag)
		s.collators[tag] = c
	}
	return c
}

// Sort returns a new slice holding chars ordered by spec. The input is not
// modified. Equal keys keep their input order, in both directions.
func (s *Sorter) Sort(chars []domain.Character, spec domain.SortSpec, tag language.Tag) []domain.Character {
	out := slices.Clone(chars)
	if spec.Key == domain.SortNone || len(out) < 2 {
		return out
	}

	c := s.collator(tag)
	slices.SortStableFunc(out, func(a, b domain.Character) int {
		cmp := c.CompareString(spec.Key.Field(a), spec.Key.Field(b))
		if spec.Order == domain.SortDesc {
			return -cmp
		}
		return cmp
	})
	return out
}
