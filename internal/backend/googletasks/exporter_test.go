package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"todo/internal/task"
)

type insertedTask struct {
	ListID   string
	Title    string
	Status   string
	Previous string
}

// fakeTasksAPI serves the handful of Google Tasks endpoints export uses.
type fakeTasksAPI struct {
	mu       sync.Mutex
	lists    []*tasksapi.TaskList
	created  []string
	inserted []insertedTask
	failWith int
}

func (f *fakeTasksAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != 0 {
		http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, f.failWith)
		return
	}

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(path, "/users/@me/lists") && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(&tasksapi.TaskLists{Items: f.lists})

	case strings.HasSuffix(path, "/users/@me/lists") && r.Method == http.MethodPost:
		var list tasksapi.TaskList
		json.NewDecoder(r.Body).Decode(&list)
		list.Id = fmt.Sprintf("list-%d", len(f.lists)+1)
		f.lists = append(f.lists, &list)
		f.created = append(f.created, list.Title)
		json.NewEncoder(w).Encode(&list)

	case strings.Contains(path, "/lists/") && strings.HasSuffix(path, "/tasks") && r.Method == http.MethodPost:
		parts := strings.Split(path, "/")
		listID := parts[len(parts)-2]
		var t tasksapi.Task
		json.NewDecoder(r.Body).Decode(&t)
		f.inserted = append(f.inserted, insertedTask{
			ListID:   listID,
			Title:    t.Title,
			Status:   t.Status,
			Previous: r.URL.Query().Get("previous"),
		})
		t.Id = fmt.Sprintf("task-%d", len(f.inserted))
		json.NewEncoder(w).Encode(&t)

	default:
		http.Error(w, "unexpected request "+r.Method+" "+path, http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, api *fakeTasksAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestExport_CreatesListAndInsertsInOrder(t *testing.T) {
	api := &fakeTasksAPI{lists: []*tasksapi.TaskList{{Id: "default", Title: "My Tasks"}}}
	c := newTestClient(t, api)

	n, err := c.Export(context.Background(), "To-Do List", []task.Task{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: "Walk dog", Completed: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 exported, got %d", n)
	}
	if len(api.created) != 1 || api.created[0] != "To-Do List" {
		t.Errorf("expected list To-Do List created, got %v", api.created)
	}

	want := []insertedTask{
		{ListID: "list-2", Title: "Buy milk", Status: "needsAction"},
		{ListID: "list-2", Title: "Walk dog", Status: "completed", Previous: "task-1"},
	}
	if len(api.inserted) != len(want) {
		t.Fatalf("expected %d inserts, got %+v", len(want), api.inserted)
	}
	for i := range want {
		if api.inserted[i] != want[i] {
			t.Errorf("insert %d: expected %+v, got %+v", i, want[i], api.inserted[i])
		}
	}
}

func TestExport_ReusesExistingList(t *testing.T) {
	api := &fakeTasksAPI{lists: []*tasksapi.TaskList{
		{Id: "default", Title: "My Tasks"},
		{Id: "existing", Title: "  to-do list "},
	}}
	c := newTestClient(t, api)

	if _, err := c.Export(context.Background(), "To-Do List", []task.Task{{ID: "1", Text: "A"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.created) != 0 {
		t.Errorf("expected no list created, got %v", api.created)
	}
	if len(api.inserted) != 1 || api.inserted[0].ListID != "existing" {
		t.Errorf("expected insert into existing list, got %+v", api.inserted)
	}
}

func TestExport_EmptyCollection(t *testing.T) {
	api := &fakeTasksAPI{}
	c := newTestClient(t, api)

	n, err := c.Export(context.Background(), "Inbox", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || len(api.inserted) != 0 {
		t.Errorf("expected nothing exported, got n=%d inserts=%v", n, api.inserted)
	}
}

func TestExport_AuthFailure(t *testing.T) {
	api := &fakeTasksAPI{failWith: http.StatusForbidden}
	c := newTestClient(t, api)

	_, err := c.Export(context.Background(), "Inbox", []task.Task{{ID: "1", Text: "A"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "todo login") {
		t.Errorf("expected login hint, got %v", err)
	}
}
