package charts

import (
	"fmt"
	"math"
)

// Counts is the dataset of a productivity chart.
type Counts struct {
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending"   yaml:"pending"`
	Overdue   int `json:"overdue"   yaml:"overdue"`
}

// Total is the sum of all categories.
func (c Counts) Total() int {
	return c.Completed + c.Pending + c.Overdue
}

// Validate rejects negative counts.
func (c Counts) Validate() error {
	if c.Completed < 0 || c.Pending < 0 || c.Overdue < 0 {
		return fmt.Errorf("%w: negative count in %+v", ErrInvalidDataset, c)
	}

	return nil
}

// Dataset is the input pushed through [Manager.UpdateChart]. Build it with
// [CountsDataset] for productivity charts or [SeriesDataset] for bar and
// progress charts.
type Dataset struct {
	Values []float64
	Labels []string
	Counts Counts
	series bool
}

// CountsDataset wraps counts for a productivity chart.
func CountsDataset(c Counts) Dataset {
	return Dataset{Counts: c}
}

// SeriesDataset wraps values and their labels for a bar or progress chart.
// A nil labels slice means every label is empty.
func SeriesDataset(values []float64, labels []string) Dataset {
	return Dataset{Values: values, Labels: labels, series: true}
}

// IsSeries reports whether the dataset carries a value series.
func (d Dataset) IsSeries() bool {
	return d.series
}

// Series is a validated value series with one label per value.
type Series struct {
	Values []float64
	Labels []string
}

// NewSeries validates and copies values and labels. Values must be finite
// and non-negative; labels must be nil or the same length as values.
func NewSeries(values []float64, labels []string) (Series, error) {
	if labels != nil && len(labels) != len(values) {
		return Series{}, fmt.Errorf("%w: %d values but %d labels", ErrInvalidDataset, len(values), len(labels))
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Series{}, fmt.Errorf("%w: value %d is %v", ErrInvalidDataset, i, v)
		}
	}

	s := Series{
		Values: append([]float64(nil), values...),
		Labels: make([]string, len(values)),
	}
	copy(s.Labels, labels)

	return s, nil
}

// Len is the number of points.
func (s Series) Len() int {
	return len(s.Values)
}

// Max is the largest value, or 0 for an empty series.
func (s Series) Max() float64 {
	m := 0.0
	for _, v := range s.Values {
		m = math.Max(m, v)
	}

	return m
}
