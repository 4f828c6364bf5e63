package charts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ThemeAttribute is the marker attribute that carries an explicit theme.
const ThemeAttribute = "data-theme"

// PreferenceSource reports the host's color-scheme preference.
type PreferenceSource interface {
	PrefersDark() bool
}

// PreferenceFunc adapts a function to [PreferenceSource].
type PreferenceFunc func() bool

func (f PreferenceFunc) PrefersDark() bool {
	return f()
}

// ThemeObserver keeps a [Manager]'s theme in sync with an explicit theme
// attribute and the color-scheme preference. An explicit "light" or "dark"
// attribute wins; an empty or "auto" attribute defers to the preference.
type ThemeObserver struct {
	manager     *Manager
	logger      *slog.Logger
	attribute   string
	mu          sync.Mutex
	prefersDark bool
}

// NewThemeObserver creates an observer for m. The initial preference is
// light and no attribute is set.
func NewThemeObserver(m *Manager) *ThemeObserver {
	return &ThemeObserver{
		manager: m,
		logger:  m.logger,
	}
}

// AttributeChanged handles a change to a marker attribute. Attributes other
// than [ThemeAttribute] are ignored.
func (o *ThemeObserver) AttributeChanged(name, value string) {
	if name != ThemeAttribute {
		return
	}

	v := strings.ToLower(strings.TrimSpace(value))
	if _, err := ParseTheme(v); err != nil && v != "" && v != "auto" {
		o.logger.Warn("unrecognized theme attribute, deferring to preference", slog.String("value", value))
	}

	o.apply(func() { o.attribute = v })
}

// PreferenceChanged handles a change of the color-scheme preference.
func (o *ThemeObserver) PreferenceChanged(dark bool) {
	o.apply(func() { o.prefersDark = dark })
}

// Theme resolves the effective theme from the current inputs.
func (o *ThemeObserver) Theme() Theme {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.resolve()
}

func (o *ThemeObserver) resolve() Theme {
	t, err := ParseTheme(o.attribute)
	if err == nil {
		return t
	}

	if o.prefersDark {
		return ThemeDark
	}

	return ThemeLight
}

// apply runs set and pushes the resulting theme to the manager under one
// lock, so concurrent changes reach the manager in the order they resolved.
func (o *ThemeObserver) apply(set func()) {
	o.mu.Lock()
	set()
	t := o.resolve()
	o.manager.SetTheme(t)
	o.mu.Unlock()

	err := o.manager.ResizeAllCharts()
	if err != nil {
		o.logger.Error("redraw charts after theme change",
			slog.String("theme", string(t)),
			slog.Any("err", err),
		)
	}
}

// Watch polls src every interval and fires [ThemeObserver.PreferenceChanged]
// on the first poll and whenever the preference flips. It blocks until ctx
// is done and returns the context error. A non-positive interval is an
// error.
func (o *ThemeObserver) Watch(ctx context.Context, src PreferenceSource, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	last := src.PrefersDark()
	o.PreferenceChanged(last)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			dark := src.PrefersDark()
			if dark == last {
				continue
			}

			last = dark
			o.logger.Debug("color scheme preference changed", slog.Bool("dark", dark))
			o.PreferenceChanged(dark)
		}
	}
}
