package home

import (
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/ui/theme"
)

const logoArt = ` ███████╗███╗   ██╗ █████╗ ██████╗  ██████╗ ██╗   ██╗███████╗███████╗████████╗
 ██╔════╝████╗  ██║██╔══██╗██╔══██╗██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
 ███████╗██╔██╗ ██║███████║██████╔╝██║   ██║██║   ██║█████╗  ███████╗   ██║
 ╚════██║██║╚██╗██║██╔══██║██╔═══╝ ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
 ███████║██║ ╚████║██║  ██║██║     ╚██████╔╝╚██████╔╝███████╗███████║   ██║
 ╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝      ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

// renderLogo returns the SNAPQUEST banner styled in the primary color.
func renderLogo() string {
	return lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(logoArt)
}
