package charttui

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/MacroPower/smarttask/pkg/charts"
)

var _ charts.PreferenceSource = (*TerminalPreference)(nil)

// TerminalPreference reports the terminal's background as a color-scheme
// preference.
type TerminalPreference struct {
	output *termenv.Output
}

// NewTerminalPreference queries the terminal behind w.
func NewTerminalPreference(w io.Writer) *TerminalPreference {
	return &TerminalPreference{output: termenv.NewOutput(w)}
}

// PrefersDark implements [charts.PreferenceSource].
func (p *TerminalPreference) PrefersDark() bool {
	return p.output.HasDarkBackground()
}
