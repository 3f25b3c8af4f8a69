// Package theme builds the lipgloss styles for the dark and light
// palettes.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tgift/internal/model"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Accent     lipgloss.Color
	AccentSoft lipgloss.Color
	Pink       lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color
	Surface    lipgloss.Color
	OnAccent   lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Dark is the default palette.
var Dark = Palette{
	Accent:     "#B383FF",
	AccentSoft: "#C5AFFF",
	Pink:       "#F278D3",
	Text:       "#FFFFFF",
	Muted:      "#9090A0",
	Subtle:     "#2A2A2A",
	Border:     "#3A3A4A",
	Surface:    "#151515",
	OnAccent:   "#151515",
	Success:    "#6BCB77",
	Warning:    "#FFD93D",
	Error:      "#FF6B6B",
}

// Light is the palette used when dark mode is off.
var Light = Palette{
	Accent:     "#B23AC7",
	AccentSoft: "#805AD5",
	Pink:       "#C2185B",
	Text:       "#1A202C",
	Muted:      "#718096",
	Subtle:     "#E2E8F0",
	Border:     "#CBD5E0",
	Surface:    "#FFFFFF",
	OnAccent:   "#FFFFFF",
	Success:    "#2F855A",
	Warning:    "#B7791F",
	Error:      "#C53030",
}

// Density controls how much room each alert takes in the list.
type Density struct {
	// MessageLines is how many message lines a collapsed alert shows.
	MessageLines int

	// Spacing is the number of blank lines between alerts.
	Spacing int
}

var densities = [...]Density{
	model.FontSmall:      {MessageLines: 1, Spacing: 0},
	model.FontMedium:     {MessageLines: 2, Spacing: 1},
	model.FontLarge:      {MessageLines: 3, Spacing: 1},
	model.FontExtraLarge: {MessageLines: 4, Spacing: 2},
}

// DensityFor maps a font size step to a list density.
func DensityFor(fontSize int) Density {
	if fontSize < 0 || fontSize >= len(densities) {
		return densities[model.FontMedium]
	}
	return densities[fontSize]
}

// Theme holds every style the views render with.
type Theme struct {
	Dark    bool
	Palette Palette
	Density Density

	Header      lipgloss.Style
	HeaderFlash lipgloss.Style
	StatusBar   lipgloss.Style
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Item        lipgloss.Style
	Time        lipgloss.Style
	Message     lipgloss.Style
	Link        lipgloss.Style
	Help        lipgloss.Style
	Badge       lipgloss.Style
	Notice      lipgloss.Style
	Error       lipgloss.Style
}

// New builds a Theme for the given settings.
func New(s model.Settings) Theme {
	p := Light
	if s.DarkMode {
		p = Dark
	}

	return Theme{
		Dark:    s.DarkMode,
		Palette: p,
		Density: DensityFor(s.FontSize),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.OnAccent).
			Background(p.Accent).
			Padding(0, 1),
		HeaderFlash: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.OnAccent).
			Background(p.Pink).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),
		Item: lipgloss.NewStyle().
			PaddingLeft(2),
		Time: lipgloss.NewStyle().
			Foreground(p.Muted),
		Message: lipgloss.NewStyle().
			Foreground(p.Text),
		Link: lipgloss.NewStyle().
			Foreground(p.AccentSoft).
			Underline(true),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.OnAccent).
			Background(p.Pink).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Foreground(p.Success),
		Error: lipgloss.NewStyle().
			Foreground(p.Error),
	}
}

// ConnectionStyle colors a connection label by outcome.
func (t Theme) ConnectionStyle(st model.ConnectionStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case st.Connected && st.Telegram != nil && !*st.Telegram:
		return base.Foreground(t.Palette.Warning)
	case st.Connected:
		return base.Foreground(t.Palette.Success)
	case st.Failure == model.FailureHTTP:
		return base.Foreground(t.Palette.Warning)
	default:
		return base.Foreground(t.Palette.Error)
	}
}
