package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

const callerID = "user-a"

type fakeTaskUsecase struct {
	createTask func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	listTasks  func(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error)
	getTask    func(ctx context.Context, userID, taskID string) (*domain.Task, error)
}

func (f *fakeTaskUsecase) CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.createTask(ctx, input)
}

func (f *fakeTaskUsecase) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	return f.listTasks(ctx, userID, filter)
}

func (f *fakeTaskUsecase) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return f.getTask(ctx, userID, taskID)
}

// newTaskEngine stubs authentication by setting userID the way middleware.Auth does.
func newTaskEngine(uc *fakeTaskUsecase) *gin.Engine {
	h := handler.NewTaskHandler(uc, testLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", callerID)
		c.Next()
	})
	r.POST("/tasks", h.Create)
	r.GET("/tasks", h.List)
	r.GET("/tasks/:id", h.GetByID)
	return r
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// ---- Create ----

func TestCreateTask_Success_Returns201WithID(t *testing.T) {
	var got usecase.CreateTaskInput
	uc := &fakeTaskUsecase{
		createTask: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			got = input
			return &domain.Task{ID: "task-1"}, nil
		},
	}

	w := postJSON(newTaskEngine(uc), "/tasks",
		`{"name":"Buy milk","description":"2 litres","due_date":"2024-02-01","owner":"someone-else"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if body := decodeBody(t, w); body["id"] != "task-1" {
		t.Errorf("id = %v, want task-1", body["id"])
	}
	if got.UserID != callerID {
		t.Errorf("owner = %q, want authenticated caller %q", got.UserID, callerID)
	}
	if got.Name != "Buy milk" || got.Description == nil || *got.Description != "2 litres" {
		t.Errorf("unexpected input %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(mustDate(t, "2024-02-01")) {
		t.Errorf("due date = %v, want 2024-02-01", got.DueDate)
	}
}

func TestCreateTask_InvalidDueDate_Returns400(t *testing.T) {
	uc := &fakeTaskUsecase{}

	w := postJSON(newTaskEngine(uc), "/tasks", `{"name":"x","due_date":"02/01/2024"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTask_ValidationErrors_Return400(t *testing.T) {
	for _, err := range []error{&domain.MissingFieldError{Field: "name"}, domain.ErrNameTooLong} {
		uc := &fakeTaskUsecase{
			createTask: func(_ context.Context, _ usecase.CreateTaskInput) (*domain.Task, error) {
				return nil, err
			},
		}

		w := postJSON(newTaskEngine(uc), "/tasks", `{"name":""}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%v: status = %d, want 400", err, w.Code)
		}
	}
}

// ---- List ----

func TestListTasks_PassesFilters(t *testing.T) {
	var gotUser string
	var gotFilter domain.TaskFilter
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
			gotUser, gotFilter = userID, filter
			return nil, nil
		},
	}

	w := get(newTaskEngine(uc), "/tasks?name=milk&description=&due_date_from=2024-02-01&due_date_to=2024-02-01")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUser != callerID {
		t.Errorf("user = %q, want %q", gotUser, callerID)
	}
	if gotFilter.Name == nil || *gotFilter.Name != "milk" {
		t.Errorf("name filter = %v", gotFilter.Name)
	}
	if gotFilter.Description != nil {
		t.Errorf("empty description param should be ignored, got %q", *gotFilter.Description)
	}
	want := mustDate(t, "2024-02-01")
	if gotFilter.DueDateFrom == nil || !gotFilter.DueDateFrom.Equal(want) {
		t.Errorf("due_date_from = %v", gotFilter.DueDateFrom)
	}
	if gotFilter.DueDateTo == nil || !gotFilter.DueDateTo.Equal(want) {
		t.Errorf("due_date_to = %v", gotFilter.DueDateTo)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

func TestListTasks_InvalidDate_Returns400(t *testing.T) {
	w := get(newTaskEngine(&fakeTaskUsecase{}), "/tasks?due_date_to=tomorrow")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if body := decodeBody(t, w); body["field"] != "due_date_to" {
		t.Errorf("field = %v, want due_date_to", body["field"])
	}
}

func TestListTasks_SerializesTasks(t *testing.T) {
	due := mustDate(t, "2024-02-01")
	desc := "2 litres"
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, _ string, _ domain.TaskFilter) ([]*domain.Task, error) {
			return []*domain.Task{
				{ID: "t1", UserID: callerID, Name: "Buy milk", Description: &desc, DueDate: &due},
				{ID: "t2", UserID: callerID, Name: "Call mom"},
			}, nil
		},
	}

	w := get(newTaskEngine(uc), "/tasks")

	var items []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0]["id"] != "t1" || items[1]["id"] != "t2" {
		t.Fatalf("items = %v", items)
	}
	if items[0]["due_date"] != "2024-02-01" {
		t.Errorf("due_date = %v, want 2024-02-01", items[0]["due_date"])
	}
	if items[1]["description"] != nil || items[1]["due_date"] != nil || items[1]["completed_date"] != nil {
		t.Errorf("optional fields should be null, got %v", items[1])
	}
	if _, leaked := items[0]["user_id"]; leaked {
		t.Error("owner must not be serialized")
	}
}

// ---- GetByID ----

func TestGetTask_NotFound_Returns404(t *testing.T) {
	uc := &fakeTaskUsecase{
		getTask: func(_ context.Context, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}

	w := get(newTaskEngine(uc), "/tasks/other-users-task")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetTask_Found_Returns200(t *testing.T) {
	var gotUser, gotID string
	uc := &fakeTaskUsecase{
		getTask: func(_ context.Context, userID, taskID string) (*domain.Task, error) {
			gotUser, gotID = userID, taskID
			return &domain.Task{ID: taskID, Name: "Buy milk"}, nil
		},
	}

	w := get(newTaskEngine(uc), "/tasks/t1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUser != callerID || gotID != "t1" {
		t.Errorf("usecase got (%q, %q)", gotUser, gotID)
	}
	if body := decodeBody(t, w); body["name"] != "Buy milk" {
		t.Errorf("name = %v", body["name"])
	}
}
