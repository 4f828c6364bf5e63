package charts

import "errors"

var (
	// ErrUnknownKind indicates a chart type outside the supported set.
	ErrUnknownKind = errors.New("unknown chart type")

	// ErrCanvasNotFound indicates no surface is registered for a canvas id.
	ErrCanvasNotFound = errors.New("canvas not found")

	// ErrChartNotFound indicates no chart is registered for an id.
	ErrChartNotFound = errors.New("chart not found")

	// ErrInvalidDataset indicates malformed chart input, such as negative
	// values or labels that do not pair with the values.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrDatasetMismatch indicates a dataset whose shape does not fit the
	// chart it was sent to.
	ErrDatasetMismatch = errors.New("dataset does not match chart type")

	// ErrInvalidDimensions indicates a non-positive size or pixel ratio.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrUnknownTheme indicates a theme name that cannot be parsed.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrInvalidInterval indicates a non-positive polling interval.
	ErrInvalidInterval = errors.New("invalid polling interval")
)
