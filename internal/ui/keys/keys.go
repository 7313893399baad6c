// Package keys holds the key bindings shared by the terminal screens.
package keys

import "charm.land/bubbles/v2/key"

var (
	Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	)
	Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	)
	Left = key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "Prev answer"),
	)
	Right = key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "Next answer"),
	)
	Select = key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "Select"),
	)
	Check = key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("C", "Check answers"),
	)
	Again = key.NewBinding(
		key.WithKeys("p", "r"),
		key.WithHelp("P", "Play again"),
	)
	Back = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	)
	Quit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	)
)

// Choice returns the 1-based answer number for the digit keys 1-9, or 0.
func Choice(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}
