package tasks

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/MacroPower/smarttask/pkg/syncs"
)

// storeVersion is written into every store file.
const storeVersion = 1

type storeFile struct {
	Tasks   []Task `yaml:"tasks"`
	Version int    `yaml:"version"`
}

var pathLocks syncs.KeyLock

// FileStore persists tasks in a YAML file. Every operation locks the file,
// reads it, and writes it back, so several processes can share one store.
type FileStore struct {
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
	path   string
}

// StoreOption configures a [FileStore].
type StoreOption func(*FileStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *FileStore) {
		s.now = now
	}
}

// WithIDGenerator overrides how task ids are minted.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *FileStore) {
		s.newID = fn
	}
}

// WithStoreLogger sets the logger for store operations.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *FileStore) {
		s.logger = l
	}
}

// NewFileStore opens the store at path, creating its directory.
func NewFileStore(path string, opts ...StoreOption) (*FileStore, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("%w: create directory: %w", ErrStore, err)
	}

	s := &FileStore{
		path:   path,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path is the store file.
func (s *FileStore) Path() string {
	return s.path
}

// Now is the store's current time.
func (s *FileStore) Now() time.Time {
	return s.now()
}

// List returns every task, newest first.
func (s *FileStore) List() ([]Task, error) {
	var out []Task

	err := s.withFileLock(func(f *os.File) error {
		var err error

		out, err = s.read(f)

		return err
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(out)

	return out, nil
}

// Get returns the task with the given id.
func (s *FileStore) Get(id string) (Task, error) {
	all, err := s.List()
	if err != nil {
		return Task{}, err
	}

	i := slices.IndexFunc(all, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return all[i], nil
}

// Add creates a task from d.
func (s *FileStore) Add(d Draft) (Task, error) {
	t := Task{}

	err := d.apply(&t)
	if err != nil {
		return Task{}, err
	}

	now := s.now()
	t.ID = s.newID()
	t.CreatedAt = now
	t.UpdatedAt = now

	err = s.mutate(func(all []Task) ([]Task, error) {
		return append(all, t), nil
	})
	if err != nil {
		return Task{}, err
	}

	s.logger.Debug("task added", slog.String("id", t.ID), slog.String("title", t.Title))

	return t, nil
}

// Update applies p to the task with the given id.
func (s *FileStore) Update(id string, p Patch) (Task, error) {
	return s.modify(id, func(t *Task) error {
		return p.apply(t)
	})
}

// Toggle flips the completion state, setting or clearing CompletedAt.
func (s *FileStore) Toggle(id string) (Task, error) {
	return s.modify(id, func(t *Task) error {
		t.Completed = !t.Completed
		if t.Completed {
			now := s.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}

		return nil
	})
}

// SetCompleted marks a task done or open. It is a no-op when the task is
// already in that state.
func (s *FileStore) SetCompleted(id string, done bool) (Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return Task{}, err
	}

	if t.Completed == done {
		return t, nil
	}

	return s.Toggle(id)
}

// Delete removes the task with the given id.
func (s *FileStore) Delete(id string) error {
	return s.mutate(func(all []Task) ([]Task, error) {
		i := slices.IndexFunc(all, func(t Task) bool { return t.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}

		return slices.Delete(all, i, i+1), nil
	})
}

// Clear removes every task.
func (s *FileStore) Clear() error {
	return s.mutate(func([]Task) ([]Task, error) {
		return []Task{}, nil
	})
}

// Replace overwrites the store with ts, after validating each task.
func (s *FileStore) Replace(ts []Task) error {
	var merr *multierror.Error

	for _, t := range ts {
		err := t.Validate()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("task %q: %w", t.ID, err))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return err
	}

	return s.mutate(func([]Task) ([]Task, error) {
		return slices.Clone(ts), nil
	})
}

// Remind returns open tasks due today that were not yet reminded today and
// records the reminder on them.
func (s *FileStore) Remind() ([]Task, error) {
	now := s.now()
	today := now.Format(DateLayout)

	var due []Task

	err := s.mutate(func(all []Task) ([]Task, error) {
		for i := range all {
			if all[i].Completed || !all[i].DueOn(now) || all[i].NotifiedOn == today {
				continue
			}

			all[i].NotifiedOn = today
			due = append(due, all[i])
		}

		return all, nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(due)

	return due, nil
}

func (s *FileStore) modify(id string, fn func(*Task) error) (Task, error) {
	var out Task

	err := s.mutate(func(all []Task) ([]Task, error) {
		i := slices.IndexFunc(all, func(t Task) bool { return t.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}

		t := all[i]

		err := fn(&t)
		if err != nil {
			return nil, err
		}

		t.UpdatedAt = s.now()
		all[i] = t
		out = t

		return all, nil
	})

	return out, err
}

func (s *FileStore) mutate(fn func([]Task) ([]Task, error)) error {
	return s.withFileLock(func(f *os.File) error {
		all, err := s.read(f)
		if err != nil {
			return err
		}

		all, err = fn(all)
		if err != nil {
			return err
		}

		return s.write(f, all)
	})
}

// withFileLock runs fn with the store file open and exclusively locked.
// Goroutines sharing a path queue on an in-process lock first, so at most one
// of them waits on the file lock.
func (s *FileStore) withFileLock(fn func(*os.File) error) error {
	return pathLocks.Do(s.path, func() error {
		return s.lockFile(fn)
	})
}

func (s *FileStore) lockFile(fn func(*os.File) error) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open: %w", ErrStore, err)
	}
	defer f.Close()

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX)
	if err != nil {
		return fmt.Errorf("%w: lock: %w", ErrStore, err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn(f)
}

func (s *FileStore) read(f *os.File) ([]Task, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrStore, err)
	}

	if len(data) == 0 {
		return []Task{}, nil
	}

	doc := storeFile{}

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrStore, s.path, err)
	}

	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}

	return doc.Tasks, nil
}

func (s *FileStore) write(f *os.File, all []Task) error {
	data, err := yaml.Marshal(storeFile{Version: storeVersion, Tasks: all})
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStore, err)
	}

	err = f.Truncate(0)
	if err != nil {
		return fmt.Errorf("%w: truncate: %w", ErrStore, err)
	}

	_, err = f.WriteAt(data, 0)
	if err != nil {
		return fmt.Errorf("%w: write: %w", ErrStore, err)
	}

	return nil
}

func sortNewestFirst(ts []Task) {
	slices.SortStableFunc(ts, func(a, b Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
