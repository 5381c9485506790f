package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Austuin/HoneyBadgerTool/pro"
)

// Client calls job board RPCs.
type Client struct {
	baseURL string
	worker  string
	client  *http.Client
}

// NewClient creates a client for the given address or URL, acting as
// the given worker (ID or username).
func NewClient(addr, worker string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, worker: worker, client: &http.Client{}}
}

// ListJobs returns the job board.
func (c *Client) ListJobs(ctx context.Context) ([]pro.JobView, error) {
	var response jobsListResponse
	if err := c.post(ctx, "/jobs/list", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Jobs, nil
}

// ListArchivedJobs returns completed-and-archived jobs.
func (c *Client) ListArchivedJobs(ctx context.Context) ([]pro.JobView, error) {
	var response jobsListResponse
	if err := c.post(ctx, "/jobs/archived", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Jobs, nil
}

// GetJob returns a single job's board view.
func (c *Client) GetJob(ctx context.Context, jobID int64) (pro.JobView, error) {
	var response jobResponse
	if err := c.post(ctx, "/jobs/get", jobRequest{JobID: jobID}, &response); err != nil {
		return pro.JobView{}, err
	}
	return response.Job, nil
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, opts pro.CreateJobOptions) (pro.JobView, error) {
	var response jobResponse
	err := c.post(ctx, "/jobs/create", jobCreateRequest{
		Name:         opts.Name,
		Description:  opts.Description,
		Requirements: opts.Requirements,
		MaxWorkers:   opts.MaxWorkers,
		AutoReview:   opts.AutoReview,
	}, &response)
	if err != nil {
		return pro.JobView{}, err
	}
	return response.Job, nil
}

// UpdateJob modifies a job's fields.
func (c *Client) UpdateJob(ctx context.Context, jobID int64, opts pro.UpdateJobOptions) (pro.JobView, error) {
	var response jobResponse
	err := c.post(ctx, "/jobs/update", jobUpdateRequest{
		JobID:        jobID,
		Name:         opts.Name,
		Description:  opts.Description,
		Requirements: opts.Requirements,
		MaxWorkers:   opts.MaxWorkers,
	}, &response)
	if err != nil {
		return pro.JobView{}, err
	}
	return response.Job, nil
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(ctx context.Context, jobID int64) error {
	return c.post(ctx, "/jobs/delete", jobRequest{JobID: jobID}, &emptyResponse{})
}

// Join adds the client's worker to a job.
func (c *Client) Join(ctx context.Context, jobID int64) error {
	return c.post(ctx, "/jobs/join", jobRequest{JobID: jobID}, &emptyResponse{})
}

// Assign puts another worker on a job.
func (c *Client) Assign(ctx context.Context, jobID, workerID int64) error {
	return c.post(ctx, "/jobs/assign", jobAssignRequest{JobID: jobID, WorkerID: workerID}, &emptyResponse{})
}

// Leave removes the client's worker from a job.
func (c *Client) Leave(ctx context.Context, jobID int64) error {
	return c.post(ctx, "/jobs/leave", jobRequest{JobID: jobID}, &emptyResponse{})
}

// Complete marks a job's work done. Returns whether the job
// auto-completed.
func (c *Client) Complete(ctx context.Context, jobID int64) (bool, error) {
	var response jobCompleteResponse
	if err := c.post(ctx, "/jobs/complete", jobRequest{JobID: jobID}, &response); err != nil {
		return false, err
	}
	return response.AutoCompleted, nil
}

// Approve completes and archives a job.
func (c *Client) Approve(ctx context.Context, jobID int64) error {
	return c.post(ctx, "/jobs/approve", jobRequest{JobID: jobID}, &emptyResponse{})
}

// Reopen puts a job marked for review back on the board.
func (c *Client) Reopen(ctx context.Context, jobID int64) error {
	return c.post(ctx, "/jobs/reopen", jobRequest{JobID: jobID}, &emptyResponse{})
}

// ClockIn opens a time entry on a job.
func (c *Client) ClockIn(ctx context.Context, jobID int64) (time.Time, error) {
	var response clockInResponse
	if err := c.post(ctx, "/clock/in", jobRequest{JobID: jobID}, &response); err != nil {
		return time.Time{}, err
	}
	return response.ClockIn, nil
}

// ClockOut closes the open time entry on a job.
func (c *Client) ClockOut(ctx context.Context, jobID int64) (time.Time, error) {
	var response clockOutResponse
	if err := c.post(ctx, "/clock/out", jobRequest{JobID: jobID}, &response); err != nil {
		return time.Time{}, err
	}
	return response.ClockOut, nil
}

// ActiveClocks returns the jobs the client's worker is clocked in to.
func (c *Client) ActiveClocks(ctx context.Context) ([]pro.ActiveClock, error) {
	var response clockActiveResponse
	if err := c.post(ctx, "/clock/active", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Clocks, nil
}

// ListWorkers returns all registered workers.
func (c *Client) ListWorkers(ctx context.Context) ([]pro.Worker, error) {
	var response workersListResponse
	if err := c.post(ctx, "/workers/list", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Workers, nil
}

// CreateWorker registers a new worker.
func (c *Client) CreateWorker(ctx context.Context, opts pro.CreateWorkerOptions) (pro.Worker, error) {
	var response workerResponse
	err := c.post(ctx, "/workers/create", workerCreateRequest{
		Username: opts.Username,
		Initials: opts.Initials,
		Role:     opts.Role,
	}, &response)
	if err != nil {
		return pro.Worker{}, err
	}
	return response.Worker, nil
}

// DeleteWorker removes a worker.
func (c *Client) DeleteWorker(ctx context.Context, workerID int64) error {
	return c.post(ctx, "/workers/delete", workerDeleteRequest{WorkerID: workerID}, &emptyResponse{})
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.worker != "" {
		req.Header.Set(WorkerHeader, c.worker)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return fmt.Errorf("server error: %s", message)
		}
	}
	return fmt.Errorf("server error: %s", resp.Status)
}
