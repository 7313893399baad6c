package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzical/internal/ui/theme"
)

const titleArt = ` ██████╗ ██╗   ██╗██╗███████╗███████╗██╗ ██████╗ █████╗ ██╗
██╔═══██╗██║   ██║██║╚══███╔╝╚══███╔╝██║██╔════╝██╔══██╗██║
██║   ██║██║   ██║██║  ███╔╝   ███╔╝ ██║██║     ███████║██║
██║▄▄ ██║██║   ██║██║ ███╔╝   ███╔╝  ██║██║     ██╔══██║██║
╚██████╔╝╚██████╔╝██║███████╗███████╗██║╚██████╗██║  ██║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝`

const titleCompact = "Q · U · I · Z · Z · I · C · A · L"

// titleArtWidth is the widest line of titleArt.
const titleArtWidth = 64

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the block-letter title, or a one-line fallback when
// space is short.
func renderTitle(cw int, short bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	text := titleArt
	if short || cw < titleArtWidth {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}
