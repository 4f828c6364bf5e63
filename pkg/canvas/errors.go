package canvas

import "errors"

var (
	// ErrUnknownFormat indicates an output format other than PNG or SVG.
	ErrUnknownFormat = errors.New("unknown canvas format")

	// ErrNotRaster indicates a pixel operation on a vector canvas.
	ErrNotRaster = errors.New("canvas is not a raster")

	// ErrRender indicates the renderer could not be created or saved.
	ErrRender = errors.New("render canvas")
)
