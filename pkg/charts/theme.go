package charts

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme selects the two-tone palette used for chart chrome.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts a theme attribute value into a [Theme].
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

func (t Theme) String() string {
	return string(t)
}

// Palette holds the theme-dependent colors shared by all charts. Series
// colors are owned by each chart.
type Palette struct {
	Background drawing.Color
	Border     drawing.Color
	Text       drawing.Color
	Subtext    drawing.Color
	Muted      drawing.Color
	Grid       drawing.Color
	Axis       drawing.Color
	Label      drawing.Color
}

var (
	lightPalette = Palette{
		Background: hexColor("ffffff"),
		Border:     hexColor("e2e8f0"),
		Text:       hexColor("1e293b"),
		Subtext:    hexColor("64748b"),
		Muted:      hexColor("64748b"),
		Grid:       hexColor("e5e7eb"),
		Axis:       hexColor("374151"),
		Label:      hexColor("374151"),
	}

	darkPalette = Palette{
		Background: hexColor("1e293b"),
		Border:     hexColor("334155"),
		Text:       hexColor("f8fafc"),
		Subtext:    hexColor("cbd5e1"),
		Muted:      hexColor("94a3b8"),
		Grid:       hexColor("374151"),
		Axis:       hexColor("6b7280"),
		Label:      hexColor("d1d5db"),
	}
)

// PaletteFor returns the palette of a theme. Unknown themes get the light
// palette.
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return darkPalette
	}

	return lightPalette
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
