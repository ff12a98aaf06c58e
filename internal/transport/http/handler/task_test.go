package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"taskhub/internal/domain"
	"taskhub/internal/transport/http/handler"
	"taskhub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type fakeTaskUsecase struct {
	create func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	list   func(ctx context.Context, userID, search string) ([]*domain.Task, error)
	update func(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error)
	delete func(ctx context.Context, taskID, userID string) error
}

func (f *fakeTaskUsecase) Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.create(ctx, input)
}

func (f *fakeTaskUsecase) List(ctx context.Context, userID, search string) ([]*domain.Task, error) {
	return f.list(ctx, userID, search)
}

func (f *fakeTaskUsecase) Update(ctx context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	return f.update(ctx, taskID, userID, patch)
}

func (f *fakeTaskUsecase) Delete(ctx context.Context, taskID, userID string) error {
	return f.delete(ctx, taskID, userID)
}

// newTaskEngine wires the handler behind a stub that plants the caller
// identity, standing in for the auth middleware.
func newTaskEngine(uc *fakeTaskUsecase, userID string) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewTaskHandler(uc, logger)

	r := gin.New()
	asUser := func(c *gin.Context) { c.Set("userID", userID) }
	r.POST("/api/v1/tasks", asUser, h.Create)
	r.GET("/api/v1/tasks", asUser, h.List)
	r.PUT("/api/v1/tasks/:id", asUser, h.Update)
	r.DELETE("/api/v1/tasks/:id", asUser, h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTask_MissingTitle_Returns400(t *testing.T) {
	r := newTaskEngine(&fakeTaskUsecase{}, "user-a")
	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", `{"description":"no title"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTask_Returns201WithTask(t *testing.T) {
	uc := &fakeTaskUsecase{
		create: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			if input.UserID != "user-a" {
				t.Errorf("owner = %q, want user-a", input.UserID)
			}
			return &domain.Task{ID: "task-1", UserID: input.UserID, Title: input.Title}, nil
		},
	}
	r := newTaskEngine(uc, "user-a")
	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", `{"title":"Buy milk"}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Buy milk") {
		t.Errorf("body = %q, want created task", w.Body.String())
	}
}

func TestListTasks_PassesSearchQuery(t *testing.T) {
	uc := &fakeTaskUsecase{
		list: func(_ context.Context, userID, search string) ([]*domain.Task, error) {
			if userID != "user-a" {
				t.Errorf("user = %q, want user-a", userID)
			}
			if search != "milk" {
				t.Errorf("search = %q, want milk", search)
			}
			return []*domain.Task{{ID: "task-1", Title: "Buy milk"}}, nil
		},
	}
	r := newTaskEngine(uc, "user-a")
	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks?search=milk", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestListTasks_Empty_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeTaskUsecase{
		list: func(_ context.Context, _, _ string) ([]*domain.Task, error) {
			return nil, nil
		},
	}
	r := newTaskEngine(uc, "user-b")
	w := doJSON(t, r, http.MethodGet, "/api/v1/tasks", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestUpdateTask_MissingTask_Returns404(t *testing.T) {
	uc := &fakeTaskUsecase{
		update: func(_ context.Context, _, _ string, _ domain.TaskPatch) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	r := newTaskEngine(uc, "user-a")
	w := doJSON(t, r, http.MethodPut, "/api/v1/tasks/task-x", `{"isCompleted":true}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task not found") {
		t.Errorf("body = %q, want not-found message", w.Body.String())
	}
}

func TestUpdateTask_ForeignTask_Returns403(t *testing.T) {
	uc := &fakeTaskUsecase{
		update: func(_ context.Context, _, _ string, _ domain.TaskPatch) (*domain.Task, error) {
			return nil, domain.ErrTaskForbidden
		},
	}
	r := newTaskEngine(uc, "user-b")
	w := doJSON(t, r, http.MethodPut, "/api/v1/tasks/task-1", `{"isCompleted":true}`)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestUpdateTask_PartialBody_OnlySetsProvidedFields(t *testing.T) {
	uc := &fakeTaskUsecase{
		update: func(_ context.Context, taskID, userID string, patch domain.TaskPatch) (*domain.Task, error) {
			if patch.Completed == nil || !*patch.Completed {
				t.Error("isCompleted=true not carried into the patch")
			}
			if patch.Title != nil || patch.Description != nil {
				t.Error("absent fields must stay nil")
			}
			return &domain.Task{ID: taskID, UserID: userID, Title: "Buy milk", Completed: true}, nil
		},
	}
	r := newTaskEngine(uc, "user-a")
	w := doJSON(t, r, http.MethodPut, "/api/v1/tasks/task-1", `{"isCompleted":true}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"isCompleted":true`) {
		t.Errorf("body = %q, want completed task", w.Body.String())
	}
}

func TestDeleteTask_ForeignTask_Returns403(t *testing.T) {
	uc := &fakeTaskUsecase{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrTaskForbidden
		},
	}
	r := newTaskEngine(uc, "user-b")
	w := doJSON(t, r, http.MethodDelete, "/api/v1/tasks/task-1", "")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestDeleteTask_Owner_Returns200(t *testing.T) {
	uc := &fakeTaskUsecase{
		delete: func(_ context.Context, taskID, userID string) error {
			if taskID != "task-1" || userID != "user-a" {
				t.Errorf("delete args = %q %q", taskID, userID)
			}
			return nil
		},
	}
	r := newTaskEngine(uc, "user-a")
	w := doJSON(t, r, http.MethodDelete, "/api/v1/tasks/task-1", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task removed") {
		t.Errorf("body = %q, want removal message", w.Body.String())
	}
}
