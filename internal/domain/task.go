package domain

// DateLayout is the calendar-date format used by every dated record.
const DateLayout = "2006-01-02"

type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	JobID       int64    `json:"jobId"`
	Type        TaskType `json:"type"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	Completed   bool     `json:"completed"`
	TagIDs      []int64  `json:"tags,omitempty"`
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tagID int64) bool {
	for _, id := range t.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

type Job struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Color ColorTag `json:"color"`
}

type Tag struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Color ColorTag `json:"color"`
}
