package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

// Kind is a backup encoding.
type Kind string

const (
	KindJSON Kind = "json"
	KindGzip Kind = "json.gz"
	KindXLSX Kind = "xlsx"
)

// KindOf picks the encoding from a file name.
func KindOf(name string) (Kind, error) {
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".json.gz"), strings.HasSuffix(lower, ".gz"):
		return KindGzip, nil
	case strings.HasSuffix(lower, ".json"):
		return KindJSON, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return KindXLSX, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
}

// Extension is the file extension including the dot.
func (k Kind) Extension() string {
	return "." + string(k)
}

// Write encodes ts in kind k.
func Write(w io.Writer, k Kind, ts []tasks.Task, now time.Time) error {
	switch k {
	case KindJSON:
		return WriteJSON(w, ts, false)
	case KindGzip:
		return WriteJSON(w, ts, true)
	case KindXLSX:
		return WriteXLSX(w, ts, now)
	}

	return fmt.Errorf("%w: %q", ErrUnsupportedFile, k)
}

// WriteFile encodes ts into name, choosing the encoding from its extension.
func WriteFile(name string, ts []tasks.Task, now time.Time) error {
	k, err := KindOf(name)
	if err != nil {
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	err = Write(f, k, ts, now)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	return nil
}

// ReadFile reads a JSON or gzip JSON backup.
func ReadFile(name string) ([]tasks.Task, error) {
	k, err := KindOf(name)
	if err != nil {
		return nil, err
	}

	if k == KindXLSX {
		return nil, fmt.Errorf("%w: cannot import %s", ErrUnsupportedFile, name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	return ReadJSON(f)
}
