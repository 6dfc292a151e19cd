package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreateTaskRequiresDescription(t *testing.T) {
	router := setupTestRouter(t)
	_, token := signup(t, router, "alice@example.com")

	rec := doRequest(router, newJSONRequest(t, http.MethodPost, "/tasks",
		map[string]any{"description": "   "}, token))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTaskLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	_, token := signup(t, router, "alice@example.com")

	rec := doRequest(router, newJSONRequest(t, http.MethodPost, "/tasks",
		map[string]any{"description": "buy milk"}, token))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var task map[string]any
	decodeBody(t, rec.Body.Bytes(), &task)
	taskID, _ := task["id"].(string)
	if taskID == "" {
		t.Fatalf("expected task id, got %v", task)
	}
	if task["completed"] != false {
		t.Fatalf("expected completed to default to false")
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks/"+taskID, nil, token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 fetching task, got %d", rec.Code)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodPatch, "/tasks/"+taskID,
		map[string]any{"completed": true}, token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 updating task, got %d", rec.Code)
	}
	decodeBody(t, rec.Body.Bytes(), &task)
	if task["completed"] != true {
		t.Fatalf("expected task to be completed, got %v", task)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodPatch, "/tasks/"+taskID,
		map[string]any{"owner_id": "someone-else"}, token))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for disallowed task field, got %d", rec.Code)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodDelete, "/tasks/"+taskID, nil, token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 deleting task, got %d", rec.Code)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks/"+taskID, nil, token))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after deletion, got %d", rec.Code)
	}
}

func TestTasksAreOwnerScoped(t *testing.T) {
	router := setupTestRouter(t)
	_, aliceToken := signup(t, router, "alice@example.com")
	_, bobToken := signup(t, router, "bob@example.com")

	rec := doRequest(router, newJSONRequest(t, http.MethodPost, "/tasks",
		map[string]any{"description": "alice's task"}, aliceToken))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var task map[string]any
	decodeBody(t, rec.Body.Bytes(), &task)
	taskID, _ := task["id"].(string)

	rec = doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks/"+taskID, nil, bobToken))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected another user's task to be invisible, got %d", rec.Code)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks", nil, bobToken))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 listing tasks, got %d", rec.Code)
	}
	var tasks []map[string]any
	decodeBody(t, rec.Body.Bytes(), &tasks)
	if len(tasks) != 0 {
		t.Fatalf("expected an empty listing for the other user, got %v", tasks)
	}
}

func TestListTasksFilterAndPaging(t *testing.T) {
	router := setupTestRouter(t)
	_, token := signup(t, router, "alice@example.com")

	for i := 0; i < 5; i++ {
		body := map[string]any{
			"description": fmt.Sprintf("task-%d", i),
			"completed":   i%2 == 0,
		}
		rec := doRequest(router, newJSONRequest(t, http.MethodPost, "/tasks", body, token))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", rec.Code)
		}
	}

	rec := doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks?completed=true", nil, token))
	var tasks []map[string]any
	decodeBody(t, rec.Body.Bytes(), &tasks)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 completed tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task["completed"] != true {
			t.Fatalf("completed filter returned %v", task)
		}
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodGet,
		"/tasks?sortBy=description:desc&limit=2&skip=1", nil, token))
	decodeBody(t, rec.Body.Bytes(), &tasks)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks after limit/skip, got %d", len(tasks))
	}
	if tasks[0]["description"] != "task-3" || tasks[1]["description"] != "task-2" {
		t.Fatalf("unexpected page contents: %v", tasks)
	}

	rec = doRequest(router, newJSONRequest(t, http.MethodGet, "/tasks?sortBy=bogus:desc", nil, token))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown sort field, got %d", rec.Code)
	}
}
