package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the listing key bindings.
type keyMap struct {
	Status     key.Binding
	Species    key.Binding
	SortName   key.Binding
	SortOrigin key.Binding
	SortNone   key.Binding
	Language   key.Binding
	Retry      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Status:     newBinding([]string{"s"}, "cycle status"),
		Species:    newBinding([]string{"p"}, "cycle species"),
		SortName:   newBinding([]string{"n"}, "sort by name"),
		SortOrigin: newBinding([]string{"o"}, "sort by origin"),
		SortNone:   newBinding([]string{"x"}, "clear sort"),
		Language:   newBinding([]string{"l"}, "switch language"),
		Retry:      newBinding([]string{"r"}, "retry"),
		Quit:       newBinding([]string{"q", "ctrl+c"}, "quit"),
	}
}

func newBinding(keys []string, help string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}
