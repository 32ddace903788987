package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	MaxTaskNameLength = 255

	// DateLayout is the wire and query format of calendar dates.
	DateLayout = "2006-01-02"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNameTooLong      = errors.New("ensure this field has no more than 255 characters")
	ErrInvalidDateRange = errors.New("due_date_from must not be after due_date_to")
)

type Task struct {
	ID            string
	UserID        string
	Name          string
	Description   *string    // nil means no description
	DueDate       *time.Time // date only, UTC midnight
	CompletedDate *time.Time // date only, UTC midnight
	CreatedAt     time.Time
}

// TaskFilter narrows a task listing. Nil fields are ignored; set fields are
// combined with AND.
type TaskFilter struct {
	Name        *string    // case-insensitive substring of Name
	Description *string    // case-insensitive substring of Description
	DueDateFrom *time.Time // inclusive lower bound on DueDate
	DueDateTo   *time.Time // inclusive upper bound on DueDate
}

// Matches reports whether t satisfies every predicate of the filter.
// Storage backends that cannot push filters down evaluate them with this.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Name != nil && !containsFold(t.Name, *f.Name) {
		return false
	}
	if f.Description != nil {
		if t.Description == nil || !containsFold(*t.Description, *f.Description) {
			return false
		}
	}
	if f.DueDateFrom != nil {
		if t.DueDate == nil || t.DueDate.Before(*f.DueDateFrom) {
			return false
		}
	}
	if f.DueDateTo != nil {
		if t.DueDate == nil || t.DueDate.After(*f.DueDateTo) {
			return false
		}
	}
	return true
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// TruncateDate drops the clock part of t, keeping its calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
