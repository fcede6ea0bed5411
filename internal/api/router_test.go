package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/TWRT/equipeapp/internal/cache"
	"github.com/TWRT/equipeapp/internal/models"
	"github.com/TWRT/equipeapp/internal/repository"
	"github.com/TWRT/equipeapp/internal/service"
	"github.com/TWRT/equipeapp/internal/stats"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newLoggedTestServer(t, zerolog.Nop())
}

func newLoggedTestServer(t *testing.T, logger zerolog.Logger) *httptest.Server {
	t.Helper()
	db, err := repository.InitDB(repository.DriverModernc, filepath.Join(t.TempDir(), "equipeapp.sqlite"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := service.NewTaskService(
		repository.NewTaskRepository(db),
		cache.NewMemory[string, []models.Task](time.Minute),
		models.Roster(),
		zerolog.Nop(),
	)
	srv := httptest.NewServer(SetupRouter(svc, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp
}

type taskEnvelope struct {
	Task  models.Task `json:"task"`
	Error string      `json:"error"`
}

func TestRouter_CreateUpdateList(t *testing.T) {
	srv := newTestServer(t)

	var created taskEnvelope
	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks",
		`{"title":"Review report","description":"","assignee":"Ana Silva","priority":"High"}`, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body error %q", resp.StatusCode, created.Error)
	}
	if created.Task.ID != 1 || created.Task.Status != models.StatusNew {
		t.Fatalf("unexpected created task: %+v", created.Task)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("expected %s header", requestIDHeader)
	}

	var updated taskEnvelope
	resp = doJSON(t, http.MethodPatch, srv.URL+"/tasks/1/status", `{"status":"Done"}`, &updated)
	if resp.StatusCode != http.StatusOK || updated.Task.Status != models.StatusDone {
		t.Fatalf("update status = %d, task %+v", resp.StatusCode, updated.Task)
	}

	var list struct {
		Tasks []models.Task `json:"tasks"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/tasks?status=Done&assignee=Ana+Silva", "", &list)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if len(list.Tasks) != 1 || list.Tasks[0].ID != 1 {
		t.Fatalf("unexpected list: %+v", list.Tasks)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/tasks?status=New", "", &list)
	if resp.StatusCode != http.StatusOK || len(list.Tasks) != 0 {
		t.Fatalf("expected no New tasks, got %d (status %d)", len(list.Tasks), resp.StatusCode)
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"blank title", http.MethodPost, "/tasks", `{"title":"  ","priority":"Low"}`, http.StatusBadRequest},
		{"bad priority", http.MethodPost, "/tasks", `{"title":"x","priority":"Urgent"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/tasks", `{`, http.StatusBadRequest},
		{"missing task", http.MethodGet, "/tasks/9", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/tasks/abc", "", http.StatusBadRequest},
		{"status on missing task", http.MethodPatch, "/tasks/9/status", `{"status":"Done"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body taskEnvelope
			resp := doJSON(t, tc.method, srv.URL+tc.path, tc.body, &body)
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d; want %d", resp.StatusCode, tc.want)
			}
			if body.Error == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestRouter_InvalidStatusValue(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"x","priority":"Low"}`, nil)

	var body taskEnvelope
	resp := doJSON(t, http.MethodPatch, srv.URL+"/tasks/1/status", `{"status":"Blocked"}`, &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", resp.StatusCode)
	}
}

func TestRouter_DashboardTeamAndFilters(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"a","assignee":"Ana Silva","priority":"High"}`, nil)
	doJSON(t, http.MethodPost, srv.URL+"/tasks", `{"title":"b","assignee":"Douglas","priority":"Low"}`, nil)
	doJSON(t, http.MethodPatch, srv.URL+"/tasks/2/status", `{"status":"In Progress"}`, nil)

	var dash struct {
		Summary stats.Summary `json:"summary"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/dashboard", "", &dash)
	if dash.Summary != (stats.Summary{Total: 2, New: 1, InProgress: 1}) {
		t.Fatalf("unexpected summary: %+v", dash.Summary)
	}

	var team struct {
		Members []map[string]any `json:"members"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/team", "", &team)
	if len(team.Members) != len(models.Roster()) {
		t.Fatalf("expected %d members, got %d", len(models.Roster()), len(team.Members))
	}
	douglas := team.Members[1]
	if douglas["name"] != "Douglas" || douglas["email"] != "Douglas@fgv.br" ||
		douglas["total"] != float64(1) || douglas["in_progress"] != float64(1) {
		t.Fatalf("unexpected member stats: %v", douglas)
	}

	var opts stats.Options
	doJSON(t, http.MethodGet, srv.URL+"/tasks/filters", "", &opts)
	if len(opts.Assignees) != 2 || len(opts.Statuses) != 2 {
		t.Fatalf("unexpected filter options: %+v", opts)
	}
}

func TestRouter_ReusesClientRequestID(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/dashboard", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q; want abc-123", got)
	}
}

func TestRouter_OversizedBodyRejected(t *testing.T) {
	srv := newTestServer(t)

	huge := `{"title":"` + strings.Repeat("a", 1<<20+1) + `","priority":"Low"}`
	var body taskEnvelope
	resp := doJSON(t, http.MethodPost, srv.URL+"/tasks", huge, &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/tasks/1/status",
		`{"status":"`+strings.Repeat("a", 1<<20+1)+`"}`, &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status update status = %d; want 400", resp.StatusCode)
	}

	var list struct {
		Tasks []models.Task `json:"tasks"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/tasks", "", &list)
	if len(list.Tasks) != 0 {
		t.Fatalf("expected no task persisted, got %d", len(list.Tasks))
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRouter_GetTaskFailureIsLogged(t *testing.T) {
	buf := &syncBuffer{}
	srv := newLoggedTestServer(t, zerolog.New(buf))

	resp := doJSON(t, http.MethodGet, srv.URL+"/tasks/9", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", resp.StatusCode)
	}
	if !strings.Contains(buf.String(), `"message":"failed to get task"`) {
		t.Fatalf("expected error log line, got %q", buf.String())
	}
}
