package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
	"github.com/alexanderramin/rotina/internal/testutil"
)

func seededStore(t *testing.T) store.Store {
	t.Helper()
	s := testutil.NewTestStore(t)
	require.NoError(t, EnsureDefaults(s, nil))
	return s
}

func TestTaskAddFillsDefaults(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)

	task, err := svc.Add(domain.Task{Title: "write report", JobID: 1, Type: domain.TaskProject})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, time.Now().Format(domain.DateLayout), task.Date)

	got, err := svc.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write report", got.Title)
}

func TestTaskAddValidation(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)

	_, err := svc.Add(domain.Task{JobID: 1, Type: domain.TaskProject})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Add(domain.Task{Title: "x", JobID: 1, Type: "meeting"})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.Add(domain.Task{Title: "x", JobID: 999, Type: domain.TaskProject})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(domain.Task{Title: "x", JobID: 1, Type: domain.TaskProject, Date: "01/02/2026"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTaskToggle(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)
	task, err := svc.Add(domain.Task{Title: "x", JobID: 1, Type: domain.TaskService})
	require.NoError(t, err)

	got, err := svc.Toggle(task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = svc.Toggle(task.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestTaskDelete(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)
	task, err := svc.Add(domain.Task{Title: "x", JobID: 1, Type: domain.TaskProject})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(task.ID))
	_, err = svc.Get(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(task.ID), ErrNotFound)
}

func TestTaskListRanges(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)
	// Wednesday, mid-month.
	now := time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

	add := func(date string) {
		_, err := svc.Add(domain.Task{Title: date, JobID: 1, Type: domain.TaskProject, Date: date})
		require.NoError(t, err)
	}
	add("2026-03-11") // today
	add("2026-03-09") // Monday, same week
	add("2026-03-15") // Sunday, same week
	add("2026-03-25") // same month, next week
	add("2026-04-01") // next month

	count := func(r TaskRange) int {
		tasks, err := svc.List(TaskFilter{Range: r, Now: now})
		require.NoError(t, err)
		return len(tasks)
	}
	assert.Equal(t, 1, count(RangeToday))
	assert.Equal(t, 3, count(RangeWeek))
	assert.Equal(t, 4, count(RangeMonth))
	assert.Equal(t, 5, count(RangeAll))
}

func TestTaskListFilters(t *testing.T) {
	s := seededStore(t)
	svc := NewTaskService(s, nil)

	t1, err := svc.Add(domain.Task{Title: "a", JobID: 1, Type: domain.TaskProject, TagIDs: []int64{7}})
	require.NoError(t, err)
	_, err = svc.Add(domain.Task{Title: "b", JobID: 2, Type: domain.TaskProject})
	require.NoError(t, err)

	byJob, err := svc.List(TaskFilter{JobID: 2})
	require.NoError(t, err)
	require.Len(t, byJob, 1)
	assert.Equal(t, "b", byJob[0].Title)

	byTag, err := svc.List(TaskFilter{TagID: 7})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "a", byTag[0].Title)

	_, err = svc.Toggle(t1.ID)
	require.NoError(t, err)
	pending, err := svc.List(TaskFilter{Pending: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].Title)
}

func TestTaskServiceReportsChanges(t *testing.T) {
	s := seededStore(t)
	var seen []domain.Collection
	svc := NewTaskService(s, func(c domain.Collection) { seen = append(seen, c) })

	task, err := svc.Add(domain.Task{Title: "x", JobID: 1, Type: domain.TaskProject})
	require.NoError(t, err)
	_, err = svc.Toggle(task.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(task.ID))

	assert.Equal(t, []domain.Collection{domain.Tasks, domain.Tasks, domain.Tasks}, seen)
}
