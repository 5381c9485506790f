package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Austuin/HoneyBadgerTool/pro"
)

type testEnv struct {
	store  *pro.Store
	server *httptest.Server
	admin  pro.Worker
	basic  pro.Worker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := pro.Open(filepath.Join(t.TempDir(), "pro.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	admin, err := store.CreateWorker(ctx, pro.CreateWorkerOptions{Username: "admin", Role: pro.RoleAdmin})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	basic, err := store.CreateWorker(ctx, pro.CreateWorkerOptions{Username: "basic", Role: pro.RoleBasic})
	if err != nil {
		t.Fatalf("failed to create worker: %v", err)
	}

	srv := NewServer(store, Options{Logger: log.New(io.Discard, "", 0)})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{store: store, server: ts, admin: admin, basic: basic}
}

func (env *testEnv) client(worker string) *Client {
	return NewClient(env.server.URL, worker)
}

// postRaw sends a request without the typed client, for asserting on
// raw status codes.
func (env *testEnv) postRaw(t *testing.T, path, worker, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, env.server.URL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if worker != "" {
		req.Header.Set(WorkerHeader, worker)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_JobLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.client("admin")
	basic := env.client("basic")

	created, err := admin.CreateJob(ctx, pro.CreateJobOptions{
		Name:        "Fix the roof",
		Description: "Before it rains",
		MaxWorkers:  2,
	})
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if created.Name != "Fix the roof" {
		t.Errorf("expected job name 'Fix the roof', got %q", created.Name)
	}

	if err := basic.Join(ctx, created.ID); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	if _, err := basic.ClockIn(ctx, created.ID); err != nil {
		t.Fatalf("failed to clock in: %v", err)
	}
	clocks, err := basic.ActiveClocks(ctx)
	if err != nil {
		t.Fatalf("failed to list active clocks: %v", err)
	}
	if len(clocks) != 1 || clocks[0].JobID != created.ID {
		t.Fatalf("expected one active clock on job %d, got %v", created.ID, clocks)
	}
	if _, err := basic.ClockOut(ctx, created.ID); err != nil {
		t.Fatalf("failed to clock out: %v", err)
	}

	autoCompleted, err := basic.Complete(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to complete: %v", err)
	}
	if autoCompleted {
		t.Error("expected review flow for non-auto-review job")
	}

	view, err := basic.GetJob(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get job: %v", err)
	}
	if !view.MarkedForReview {
		t.Error("expected job marked for review")
	}

	if err := admin.Approve(ctx, created.ID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	board, err := basic.ListJobs(ctx)
	if err != nil {
		t.Fatalf("failed to list jobs: %v", err)
	}
	if len(board) != 0 {
		t.Errorf("expected empty board after approval, got %d jobs", len(board))
	}

	archived, err := basic.ListArchivedJobs(ctx)
	if err != nil {
		t.Fatalf("failed to list archived jobs: %v", err)
	}
	if len(archived) != 1 || !archived[0].Complete {
		t.Fatalf("expected one completed archived job, got %v", archived)
	}
}

func TestServer_WorkerManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.client("admin")

	created, err := admin.CreateWorker(ctx, pro.CreateWorkerOptions{
		Username: "newhire",
		Initials: "nh",
	})
	if err != nil {
		t.Fatalf("failed to create worker: %v", err)
	}
	if created.Role != pro.RoleBasic {
		t.Errorf("expected default basic role, got %q", created.Role)
	}

	workers, err := admin.ListWorkers(ctx)
	if err != nil {
		t.Fatalf("failed to list workers: %v", err)
	}
	if len(workers) != 3 {
		t.Errorf("expected 3 workers, got %d", len(workers))
	}

	if err := admin.DeleteWorker(ctx, created.ID); err != nil {
		t.Fatalf("failed to delete worker: %v", err)
	}
}

func TestServer_StatusMapping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.client("admin")

	job, err := admin.CreateJob(ctx, pro.CreateJobOptions{Name: "Crowded", MaxWorkers: 1})
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	if err := env.client("basic").Join(ctx, job.ID); err != nil {
		t.Fatalf("failed to join: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		worker string
		body   string
		status int
	}{
		{"missing identity", "/jobs/list", "", `{}`, http.StatusUnauthorized},
		{"unknown worker", "/jobs/list", "ghost", `{}`, http.StatusUnauthorized},
		{"job not found", "/jobs/get", "basic", `{"job_id": 99999}`, http.StatusNotFound},
		{"forbidden create", "/jobs/create", "basic", `{"name": "Nope"}`, http.StatusForbidden},
		{"invalid input", "/jobs/create", "admin", `{"name": ""}`, http.StatusBadRequest},
		{"malformed body", "/jobs/get", "basic", `{"job_id": `, http.StatusBadRequest},
		{"join conflict", "/jobs/join", "basic", `{"job_id": ` + jsonID(job.ID) + `}`, http.StatusConflict},
		{"clock out conflict", "/clock/out", "basic", `{"job_id": ` + jsonID(job.ID) + `}`, http.StatusConflict},
		{"forbidden worker create", "/workers/create", "basic", `{"username": "x"}`, http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := env.postRaw(t, test.path, test.worker, test.body)
			if resp.StatusCode != test.status {
				t.Errorf("expected status %d, got %d", test.status, resp.StatusCode)
			}
			var payload map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if payload["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestServer_DeleteSelfRefused(t *testing.T) {
	env := newTestEnv(t)

	body := `{"worker_id": ` + jsonID(env.admin.ID) + `}`
	resp := env.postRaw(t, "/workers/delete", "admin", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestServer_RequiresPost(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/jobs/list")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow: POST, got %q", allow)
	}
}

func TestServer_AuthenticatesByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client := env.client(jsonID(env.admin.ID))
	if _, err := client.CreateJob(ctx, pro.CreateJobOptions{Name: "By ID"}); err != nil {
		t.Fatalf("expected numeric identity to work, got %v", err)
	}
}

func TestClient_ErrorMessages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client("basic").GetJob(ctx, 99999)
	if err == nil {
		t.Fatal("expected error for missing job")
	}
	if !strings.Contains(err.Error(), "job not found") {
		t.Errorf("expected server error message to surface, got %q", err.Error())
	}
}

func jsonID(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}
