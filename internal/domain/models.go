package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCharacter is returned when a character in an API response is
// missing a field the listing depends on.
var ErrInvalidCharacter = errors.New("invalid character")

// --- Enum and Custom Type for the "status" field ---

// Status represents the life status reported for a character.
type Status string

const (
	StatusAlive   Status = "Alive"
	StatusDead    Status = "Dead"
	StatusUnknown Status = "unknown"
)

// UnmarshalJSON implements the json.Unmarshaler interface for Status.
// Only the three values the API documents are accepted.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status is not a string: %w", err)
	}
	switch Status(raw) {
	case StatusAlive, StatusDead, StatusUnknown:
		*s = Status(raw)
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidCharacter, raw)
	}
}

// Origin is the place a character comes from.
type Origin struct {
	Name string `json:"name"`
}

// Character is a single entry of the characters query. It is never
// mutated once decoded.
type Character struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Status  Status  `json:"status"`
	Species string  `json:"species"`
	Gender  string  `json:"gender"`
	Origin  *Origin `json:"origin"`
}

// UnmarshalJSON decodes a character and rejects entries without an id or
// an origin instead of substituting empty values.
func (c *Character) UnmarshalJSON(data []byte) error {
	type alias Character
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCharacter)
	}
	if a.Origin == nil {
		return fmt.Errorf("%w: character %s has no origin", ErrInvalidCharacter, a.ID)
	}
	*c = Character(a)
	return nil
}

// OriginName returns the origin's name.
func (c Character) OriginName() string {
	return c.Origin.Name
}

// CharacterPage holds one page of the characters query.
type CharacterPage struct {
	HasMore bool
	Results []Character
}

// QueryParams are the variables sent with the characters query.
// An empty Status or Species means unfiltered.
type QueryParams struct {
	Page    int
	Status  string
	Species string
}

// StatusFilters lists the status filter choices offered to the user.
var StatusFilters = []string{"", string(StatusAlive), string(StatusDead), string(StatusUnknown)}

// SpeciesFilters lists the species filter choices offered to the user.
var SpeciesFilters = []string{"", "Human", "Alien", "Humanoid", "Robot", "Cronenberg"}
