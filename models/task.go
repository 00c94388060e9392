package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "Low"
	PriorityMedium PriorityLevel = "Medium"
	PriorityHigh   PriorityLevel = "High"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryStudy    Category = "Study"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts only the YYYY-MM-DD layout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Priority preserves whichever representation wrote it: the HTTP profile
// submits integers 1-5, the storage profile uses the named levels. A zero
// Priority marks an absent value and is normalized to Medium on load.
type Priority struct {
	level   PriorityLevel
	number  int
	numeric bool
	set     bool
}

func NumericPriority(n int) Priority {
	return Priority{number: n, numeric: true, set: true}
}

func LevelPriority(l PriorityLevel) Priority {
	return Priority{level: l, set: true}
}

func (p Priority) IsZero() bool {
	return !p.set
}

// Number reports the numeric value when this priority was written by the
// HTTP profile.
func (p Priority) Number() (int, bool) {
	return p.number, p.set && p.numeric
}

// Level reports the named level when this priority was written by the
// storage profile.
func (p Priority) Level() (PriorityLevel, bool) {
	if !p.set || p.numeric {
		return "", false
	}
	return p.level, true
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	if p.numeric {
		return json.Marshal(p.number)
	}
	return json.Marshal(string(p.level))
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*p = Priority{}
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return fmt.Errorf("priority %s is not an integer", val)
		}
		*p = NumericPriority(int(n))
	case string:
		*p = LevelPriority(PriorityLevel(val))
	default:
		return fmt.Errorf("priority must be an integer or a level name")
	}
	return nil
}

// Task is the persisted record: one element of the stored JSON array.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	Category    *string  `json:"category"`
	DueDate     *Date    `json:"due_date"`
	Completed   bool     `json:"completed"`
}

// TaskCreate is the storage-facing payload validated under the lenient
// profile. Pointer fields left nil are skipped on update.
type TaskCreate struct {
	Title       string
	Description *string
	Priority    PriorityLevel
	Category    *Category
	DueDate     *Date
	Completed   bool
}

// TaskView is the HTTP representation of a record: the completion flag
// surfaces as a status string and the category as a tag.
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"due_date"`
	Tag         *string    `json:"tag"`
	Status      TaskStatus `json:"status"`
}

func ViewOf(t Task) TaskView {
	status := StatusPending
	if t.Completed {
		status = StatusCompleted
	}
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Tag:         t.Category,
		Status:      status,
	}
}
