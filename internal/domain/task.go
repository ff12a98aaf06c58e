package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskForbidden means the task exists but belongs to another user.
	ErrTaskForbidden = errors.New("task belongs to another user")
)

type Task struct {
	ID          string
	UserID      string // owner, immutable after creation
	Title       string
	Description *string // nil means no description
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
