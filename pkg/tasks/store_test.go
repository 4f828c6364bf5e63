package tasks_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/pkg/tasks"
)

type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(time.Minute)

	return c.t
}

func newStore(t *testing.T) *tasks.FileStore {
	t.Helper()

	clock := &fakeClock{t: now}
	n := 0

	s, err := tasks.NewFileStore(filepath.Join(t.TempDir(), "nested", "tasks.yaml"),
		tasks.WithClock(clock.Now),
		tasks.WithIDGenerator(func() string {
			n++

			return fmt.Sprintf("task-%d", n)
		}),
	)
	require.NoError(t, err)

	return s
}

func TestFileStoreCRUD(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	empty, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	first, err := s.Add(tasks.Draft{Title: "  Buy milk ", DueDate: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, "task-1", first.ID)
	assert.Equal(t, "Buy milk", first.Title)
	assert.Equal(t, tasks.PriorityMedium, first.Priority)

	_, err = s.Add(tasks.Draft{Title: "Write report", Priority: "high"})
	require.NoError(t, err)

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "task-2", all[0].ID, "newest first")

	title := "Buy oat milk"
	edited, err := s.Update("task-1", tasks.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, edited.Title)
	assert.Equal(t, "2025-03-12", edited.DueDate)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))

	done, err := s.Toggle("task-1")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	undone, err := s.Toggle("task-1")
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)

	require.NoError(t, s.Delete("task-2"))

	_, err = s.Get("task-2")
	require.ErrorIs(t, err, tasks.ErrNotFound)

	require.NoError(t, s.Clear())

	all, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStoreErrors(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	_, err := s.Add(tasks.Draft{Title: ""})
	require.ErrorIs(t, err, tasks.ErrEmptyTitle)

	_, err = s.Add(tasks.Draft{Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, tasks.ErrInvalidPriority)

	_, err = s.Add(tasks.Draft{Title: "x", DueDate: "tomorrow"})
	require.ErrorIs(t, err, tasks.ErrInvalidDueDate)

	_, err = s.Toggle("missing")
	require.ErrorIs(t, err, tasks.ErrNotFound)

	require.ErrorIs(t, s.Delete("missing"), tasks.ErrNotFound)

	blank := ""
	_, err = s.Add(tasks.Draft{Title: "keep"})
	require.NoError(t, err)

	_, err = s.Update("task-1", tasks.Patch{Title: &blank})
	require.ErrorIs(t, err, tasks.ErrEmptyTitle)

	kept, err := s.Get("task-1")
	require.NoError(t, err)
	assert.Equal(t, "keep", kept.Title, "failed edits are not written")
}

func TestFileStoreSetCompleted(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	_, err := s.Add(tasks.Draft{Title: "x"})
	require.NoError(t, err)

	got, err := s.SetCompleted("task-1", true)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = s.SetCompleted("task-1", true)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestFileStoreRemind(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	_, err := s.Add(tasks.Draft{Title: "today", DueDate: "2025-03-12"})
	require.NoError(t, err)
	_, err = s.Add(tasks.Draft{Title: "tomorrow", DueDate: "2025-03-13"})
	require.NoError(t, err)
	_, err = s.Add(tasks.Draft{Title: "today but done", DueDate: "2025-03-12"})
	require.NoError(t, err)
	_, err = s.Toggle("task-3")
	require.NoError(t, err)

	due, err := s.Remind()
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "today", due[0].Title)
	assert.Equal(t, "2025-03-12", due[0].NotifiedOn)

	again, err := s.Remind()
	require.NoError(t, err)
	assert.Empty(t, again, "each task is reminded once per day")
}

func TestFileStoreReplace(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	err := s.Replace([]tasks.Task{
		{ID: "a", Title: "", Priority: tasks.PriorityLow},
		{ID: "b", Title: "ok", Priority: "urgent"},
	})
	require.ErrorIs(t, err, tasks.ErrEmptyTitle)
	require.ErrorIs(t, err, tasks.ErrInvalidPriority)

	require.NoError(t, s.Replace([]tasks.Task{
		{ID: "a", Title: "A", Priority: tasks.PriorityLow, CreatedAt: now},
	}))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].ID)
}

func TestFileStorePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.yaml")

	s1, err := tasks.NewFileStore(path)
	require.NoError(t, err)

	added, err := s1.Add(tasks.Draft{Title: "shared"})
	require.NoError(t, err)
	assert.Len(t, added.ID, 36)

	s2, err := tasks.NewFileStore(path)
	require.NoError(t, err)

	got, err := s2.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "shared", got.Title)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")
}

func TestFileStoreConcurrentAdds(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.yaml")

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s, err := tasks.NewFileStore(path)
			if !assert.NoError(t, err) {
				return
			}

			_, err = s.Add(tasks.Draft{Title: fmt.Sprintf("task %d", i)})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	s, err := tasks.NewFileStore(path)
	require.NoError(t, err)

	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestFileStoreCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks: [unclosed"), 0o600))

	s, err := tasks.NewFileStore(path)
	require.NoError(t, err)

	_, err = s.List()
	require.ErrorIs(t, err, tasks.ErrStore)
}
