package charttui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/muesli/termenv"
)

const halfBlock = "▀"

// renderHalfBlocks scales img to cols x rows cells. Each cell shows two
// vertically stacked pixels: the upper one as the foreground of "▀" and the
// lower one as its background. Transparent pixels keep the terminal colors.
func renderHalfBlocks(img image.Image, cols, rows int, profile termenv.Profile) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder

	for r := range rows {
		if r > 0 {
			sb.WriteByte('\n')
		}

		top := b.Min.Y + (2*r)*b.Dy()/(2*rows)
		bottom := b.Min.Y + (2*r+1)*b.Dy()/(2*rows)

		for c := range cols {
			x := b.Min.X + c*b.Dx()/cols

			cell := profile.String(halfBlock)
			if fg, ok := termColor(profile, img.At(x, top)); ok {
				cell = cell.Foreground(fg)
			}
			if bg, ok := termColor(profile, img.At(x, bottom)); ok {
				cell = cell.Background(bg)
			}

			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

func termColor(profile termenv.Profile, c color.Color) (termenv.Color, bool) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return nil, false
	}

	// Undo alpha premultiplication.
	r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a

	return profile.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)), true
}
