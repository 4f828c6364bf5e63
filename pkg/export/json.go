package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

// BackupName is the conventional file name of a backup taken at now.
func BackupName(now time.Time, ext string) string {
	return "smarttask-backup-" + now.Format(tasks.DateLayout) + ext
}

// WriteJSON writes ts as an indented JSON array, gzip-compressed when
// compress is set.
func WriteJSON(w io.Writer, ts []tasks.Task, compress bool) error {
	if ts == nil {
		ts = []tasks.Task{}
	}

	if !compress {
		return encodeJSON(w, ts)
	}

	zw := gzip.NewWriter(w)

	err := encodeJSON(zw, ts)
	if err != nil {
		_ = zw.Close()

		return err
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("close gzip stream: %w", err)
	}

	return nil
}

func encodeJSON(w io.Writer, ts []tasks.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(ts)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	return nil
}

// ReadJSON reads a JSON backup, transparently decompressing gzip input. The
// document is validated against [Schema] and every task against its own
// rules before anything is returned.
func ReadJSON(r io.Reader) ([]tasks.Task, error) {
	br := bufio.NewReader(r)

	magic, _ := br.Peek(2)
	if bytes.Equal(magic, []byte{0x1f, 0x8b}) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %w", ErrInvalidImport, err)
		}
		defer zr.Close()

		r = zr
	} else {
		r = br
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var doc any

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	err = Validate(doc)
	if err != nil {
		return nil, err
	}

	var ts []tasks.Task

	err = json.Unmarshal(data, &ts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	var merr *multierror.Error

	for i, t := range ts {
		err := t.Validate()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("task %d (%s): %w", i, t.ID, err))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	return ts, nil
}
