package charttui_test

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/MacroPower/smarttask/pkg/charttui"
)

func splitImage(w, h int, top, bottom color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := top
			if y >= h/2 {
				c = bottom
			}

			img.Set(x, y, c)
		}
	}

	return img
}

func TestRenderHalfBlocks(t *testing.T) {
	t.Parallel()

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	tcs := map[string]struct {
		img     image.Image
		profile termenv.Profile
		cols    int
		rows    int
		want    []string
		notWant []string
		lines   int
	}{
		"ascii has no escapes": {
			img:     splitImage(4, 4, red, blue),
			profile: termenv.Ascii,
			cols:    2,
			rows:    2,
			lines:   2,
			notWant: []string{"\x1b["},
		},
		"upper pixel is the foreground": {
			img:     splitImage(4, 4, red, blue),
			profile: termenv.TrueColor,
			cols:    2,
			rows:    1,
			lines:   1,
			want:    []string{"38;2;255;0;0", "48;2;0;0;255"},
		},
		"transparent pixels keep terminal colors": {
			img:     image.NewRGBA(image.Rect(0, 0, 4, 4)),
			profile: termenv.TrueColor,
			cols:    4,
			rows:    2,
			lines:   2,
			notWant: []string{"38;2", "48;2"},
		},
		"upscales small images": {
			img:     splitImage(2, 2, red, blue),
			profile: termenv.Ascii,
			cols:    6,
			rows:    3,
			lines:   3,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := charttui.RenderHalfBlocks(tc.img, tc.cols, tc.rows, tc.profile)

			lines := strings.Split(got, "\n")
			assert.Len(t, lines, tc.lines)
			assert.Equal(t, tc.cols*tc.rows, strings.Count(got, charttui.HalfBlock))

			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			for _, nw := range tc.notWant {
				assert.NotContains(t, got, nw)
			}
		})
	}
}

func TestRenderHalfBlocksEmpty(t *testing.T) {
	t.Parallel()

	img := splitImage(4, 4, color.White, color.Black)

	assert.Empty(t, charttui.RenderHalfBlocks(nil, 4, 4, termenv.Ascii))
	assert.Empty(t, charttui.RenderHalfBlocks(img, 0, 4, termenv.Ascii))
	assert.Empty(t, charttui.RenderHalfBlocks(img, 4, 0, termenv.Ascii))
	assert.Empty(t, charttui.RenderHalfBlocks(image.NewRGBA(image.Rectangle{}), 4, 4, termenv.Ascii))
}
