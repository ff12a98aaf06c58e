package repository

import (
	"context"

	"taskhub/internal/domain"
)

type ListTasksInput struct {
	UserID string
	Search string // case-insensitive title substring, empty = all
}

// Usecases depend on this interface, not on the pgx implementation, so
// the store can be swapped and tests can inject fakes.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// FindByID deliberately takes no user filter: the ownership check in
	// the usecase must see foreign tasks to tell "not found" from
	// "forbidden".
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List applies the owner filter in the query itself, so a caller can
	// never observe another user's tasks. Newest first.
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
