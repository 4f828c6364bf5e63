package canvas

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

// Format is the output encoding of a [Canvas].
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat converts a name or file extension into a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png", "":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}

	return chart.PNG
}
