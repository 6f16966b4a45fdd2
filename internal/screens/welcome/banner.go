package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/ui/theme"
)

const bannerArt = `
 ███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗███╗   ██╗ █████╗ ██╗   ██╗
 ██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝████╗  ██║██╔══██╗██║   ██║
 ███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝ ██╔██╗ ██║███████║██║   ██║
 ╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝  ██║╚██╗██║██╔══██║╚██╗ ██╔╝
 ███████║   ██║   ╚██████╔╝██████╔╝   ██║   ██║ ╚████║██║  ██║ ╚████╔╝
 ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝   ╚═╝  ╚═══╝╚═╝  ╚═╝  ╚═══╝`

const bannerCompact = "S T U D Y N A V"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 74

// RenderBanner returns the banner in the primary color, or the compact
// form when width cannot fit the block letters.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
