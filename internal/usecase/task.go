package usecase

import (
	"context"
	"fmt"

	"taskhub/internal/domain"
	"taskhub/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description *string
}

func (u *TaskUsecase) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// List only ever returns the caller's own tasks: the owner filter lives
// in the query, not in a per-record check.
func (u *TaskUsecase) List(ctx context.Context, userID, search string) ([]*domain.Task, error) {
	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID: userID,
		Search: search,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update loads the task, enforces ownership, and only then applies the
// patch. Absent task → ErrTaskNotFound; foreign task → ErrTaskForbidden.
func (u *TaskUsecase) Update(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := u.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskForbidden
	}

	if patch.Empty() {
		return task, nil
	}

	updated, err := u.repo.Update(ctx, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Delete runs the same gate order as Update: existence, then ownership,
// then the mutation.
func (u *TaskUsecase) Delete(ctx context.Context, taskID, userID string) error {
	task, err := u.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrTaskForbidden
	}

	if err := u.repo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
