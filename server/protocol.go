package server

import (
	"time"

	"github.com/Austuin/HoneyBadgerTool/pro"
)

type emptyRequest struct{}

type emptyResponse struct{}

type jobRequest struct {
	JobID int64 `json:"job_id"`
}

type jobsListResponse struct {
	Jobs []pro.JobView `json:"jobs"`
}

type jobResponse struct {
	Job pro.JobView `json:"job"`
}

type jobCreateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	MaxWorkers   int    `json:"max_workers,omitempty"`
	AutoReview   bool   `json:"auto_review,omitempty"`
}

type jobUpdateRequest struct {
	JobID        int64   `json:"job_id"`
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	MaxWorkers   *int    `json:"max_workers,omitempty"`
}

type jobAssignRequest struct {
	JobID    int64 `json:"job_id"`
	WorkerID int64 `json:"worker_id"`
}

type jobCompleteResponse struct {
	AutoCompleted bool `json:"auto_completed"`
}

type clockInResponse struct {
	ClockIn time.Time `json:"clock_in"`
}

type clockOutResponse struct {
	ClockOut time.Time `json:"clock_out"`
}

type clockActiveResponse struct {
	Clocks []pro.ActiveClock `json:"clocks"`
}

type workersListResponse struct {
	Workers []pro.Worker `json:"workers"`
}

type workerCreateRequest struct {
	Username string   `json:"username"`
	Initials string   `json:"initials,omitempty"`
	Role     pro.Role `json:"role,omitempty"`
}

type workerResponse struct {
	Worker pro.Worker `json:"worker"`
}

type workerDeleteRequest struct {
	WorkerID int64 `json:"worker_id"`
}
