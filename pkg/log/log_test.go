package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err    error
		level  string
		format string
		check  func(t *testing.T, out string)
	}{
		"text": {
			level:  "info",
			format: "text",
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Contains(t, out, "hello")
				assert.Contains(t, out, "id=productivityChart")
				assert.NotContains(t, out, "hidden")
			},
		},
		"logfmt": {
			level:  "warn",
			format: "logfmt",
			check: func(t *testing.T, out string) {
				t.Helper()

				assert.Empty(t, out, "info is below warn")
			},
		},
		"json": {
			level:  "debug",
			format: "json",
			check: func(t *testing.T, out string) {
				t.Helper()

				lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
				require.Len(t, lines, 2)

				rec := map[string]any{}
				require.NoError(t, json.Unmarshal(lines[1], &rec))
				assert.Equal(t, "hello", rec["msg"])
				assert.Equal(t, "productivityChart", rec["id"])
			},
		},
		"bad level": {
			level:  "loud",
			format: "text",
			err:    log.ErrUnknownLevel,
		},
		"bad format": {
			level:  "info",
			format: "xml",
			err:    log.ErrUnknownFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}

			h, err := log.CreateHandlerWithStrings(buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)

			logger := slog.New(h)
			logger.Debug("hidden")
			logger.Info("hello", slog.String("id", "productivityChart"))

			tc.check(t, buf.String())
		})
	}
}

func TestGetLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]slog.Level{
		"error":   slog.LevelError,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
	}

	for in, want := range tcs {
		got, err := log.GetLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}
