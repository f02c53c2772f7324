package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

type taskService struct {
	store    store.Store
	onChange ChangeFunc
}

// NewTaskService creates a TaskService over s. onChange may be nil.
func NewTaskService(s store.Store, onChange ChangeFunc) TaskService {
	return &taskService{store: s, onChange: onChange}
}

func (s *taskService) changed(c domain.Collection) {
	if s.onChange != nil {
		s.onChange(c)
	}
}

func (s *taskService) Add(t domain.Task) (domain.Task, error) {
	if t.Title == "" {
		return domain.Task{}, fmt.Errorf("%w: task title required", ErrInvalid)
	}
	if !domain.ValidTaskTypes[t.Type] {
		return domain.Task{}, fmt.Errorf("%w: unknown task type %q", ErrInvalid, t.Type)
	}
	if t.Date == "" {
		t.Date = time.Now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, t.Date); err != nil {
		return domain.Task{}, fmt.Errorf("%w: bad date %q", ErrInvalid, t.Date)
	}
	if err := s.requireJob(t.JobID); err != nil {
		return domain.Task{}, err
	}

	if t.ID == 0 {
		t.ID = domain.NewID()
	}

	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return domain.Task{}, err
	}
	tasks = append(tasks, t)
	if err := store.SaveRecords(s.store, domain.Tasks, tasks); err != nil {
		return domain.Task{}, err
	}
	s.changed(domain.Tasks)
	return t, nil
}

func (s *taskService) requireJob(jobID int64) error {
	jobs, err := store.Records[domain.Job](s.store, domain.Jobs)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if j.ID == jobID {
			return nil
		}
	}
	return fmt.Errorf("%w: job %d", ErrNotFound, jobID)
}

func (s *taskService) Get(id int64) (domain.Task, error) {
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return domain.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
}

func (s *taskService) Update(t domain.Task) error {
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID {
			tasks[i] = t
			if err := store.SaveRecords(s.store, domain.Tasks, tasks); err != nil {
				return err
			}
			s.changed(domain.Tasks)
			return nil
		}
	}
	return fmt.Errorf("%w: task %d", ErrNotFound, t.ID)
}

func (s *taskService) Toggle(id int64) (domain.Task, error) {
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return domain.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			if err := store.SaveRecords(s.store, domain.Tasks, tasks); err != nil {
				return domain.Task{}, err
			}
			s.changed(domain.Tasks)
			return tasks[i], nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: task %d", ErrNotFound, id)
}

func (s *taskService) Delete(id int64) error {
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	if err := store.SaveRecords(s.store, domain.Tasks, kept); err != nil {
		return err
	}
	s.changed(domain.Tasks)
	return nil
}

func (s *taskService) List(f TaskFilter) ([]domain.Task, error) {
	tasks, err := store.Records[domain.Task](s.store, domain.Tasks)
	if err != nil {
		return nil, err
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.JobID != 0 && t.JobID != f.JobID {
			continue
		}
		if f.TagID != 0 && !t.HasTag(f.TagID) {
			continue
		}
		if f.Pending && t.Completed {
			continue
		}
		if !inRange(t.Date, f.Range, now) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// inRange reports whether a task date falls inside the selected window.
// Undated or unparseable dates only match RangeAll.
func inRange(date string, r TaskRange, now time.Time) bool {
	if r == RangeAll {
		return true
	}
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	switch r {
	case RangeToday:
		return d.Year() == now.Year() && d.YearDay() == now.YearDay()
	case RangeWeek:
		// Monday-based week.
		start := now.AddDate(0, 0, -mondayOffset(now))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 7)
		return !d.Before(start) && d.Before(end)
	case RangeMonth:
		return d.Year() == now.Year() && d.Month() == now.Month()
	}
	return true
}

func mondayOffset(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}
