package session

import (
	"charm.land/lipgloss/v2"

	"github.com/pranav/snapquest/internal/challenge"
	"github.com/pranav/snapquest/internal/ui/theme"
)

const artCamera = `┌───────────┐
│  ┌─────┐  │
│  │ (◉) │  │
│  └─────┘  │
└───────────┘`

const artMic = `  ┌───┐
  │▓▓▓│
  └─╥─┘
 ═══╩═══`

const artReel = ` ┌─────────┐
 │ ▶ ◼ ◼ ◼ │
 │ ○     ○ │
 └─────────┘`

// categoryArt returns a small glyph for the submission prompt. Photo
// categories share the camera; audio and video get their own.
func categoryArt(cat challenge.Category) string {
	art := artCamera
	fg := theme.Secondary

	switch cat {
	case challenge.CategoryAudio:
		art = artMic
		fg = theme.Accent
	case challenge.CategoryVideo:
		art = artReel
		fg = theme.Primary
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
