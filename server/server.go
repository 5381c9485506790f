// Package server exposes the job board over HTTP.
//
// Every endpoint is a POST taking and returning JSON. Errors come back
// as {"error": "..."} with a status code mapped from the job board's
// sentinel errors: missing records are 404, role failures are 403,
// bad input is 400, and state conflicts (full jobs, double clock-ins,
// archived reopens) are 409.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/Austuin/HoneyBadgerTool/pro"
)

const shutdownTimeout = 5 * time.Second

// Options configures a job board server.
type Options struct {
	// Auth resolves request identity. Defaults to trusting the
	// X-Worker header against the store's worker registry.
	Auth Authenticator

	Logger *log.Logger
}

// Server handles job board RPCs.
type Server struct {
	store  *pro.Store
	auth   Authenticator
	logger *log.Logger
}

// NewServer creates a job board server backed by the given store.
func NewServer(store *pro.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "server: ", log.LstdFlags)
	}
	auth := opts.Auth
	if auth == nil {
		auth = NewHeaderAuthenticator(store)
	}
	return &Server{store: store, auth: auth, logger: logger}
}

// Handler returns the HTTP handler for job board RPCs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/list", s.withWorker(s.handleJobsList))
	mux.HandleFunc("/jobs/archived", s.withWorker(s.handleJobsArchived))
	mux.HandleFunc("/jobs/get", s.withWorker(s.handleJobsGet))
	mux.HandleFunc("/jobs/create", s.withWorker(s.handleJobsCreate))
	mux.HandleFunc("/jobs/update", s.withWorker(s.handleJobsUpdate))
	mux.HandleFunc("/jobs/delete", s.withWorker(s.handleJobsDelete))
	mux.HandleFunc("/jobs/join", s.withWorker(s.handleJobsJoin))
	mux.HandleFunc("/jobs/assign", s.withWorker(s.handleJobsAssign))
	mux.HandleFunc("/jobs/leave", s.withWorker(s.handleJobsLeave))
	mux.HandleFunc("/jobs/complete", s.withWorker(s.handleJobsComplete))
	mux.HandleFunc("/jobs/approve", s.withWorker(s.handleJobsApprove))
	mux.HandleFunc("/jobs/reopen", s.withWorker(s.handleJobsReopen))
	mux.HandleFunc("/clock/in", s.withWorker(s.handleClockIn))
	mux.HandleFunc("/clock/out", s.withWorker(s.handleClockOut))
	mux.HandleFunc("/clock/active", s.withWorker(s.handleClockActive))
	mux.HandleFunc("/workers/list", s.withWorker(s.handleWorkersList))
	mux.HandleFunc("/workers/create", s.withWorker(s.handleWorkersCreate))
	mux.HandleFunc("/workers/delete", s.withWorker(s.handleWorkersDelete))
	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until it fails or an
// interrupt arrives.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: s.logger,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logf("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		if errors.Is(shutdownErr, http.ErrServerClosed) {
			shutdownErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

// workerHandler is an RPC handler with the caller already resolved.
type workerHandler func(w http.ResponseWriter, r *http.Request, worker pro.Worker)

// withWorker enforces POST and authenticates the caller before
// dispatching.
func (s *Server) withWorker(next workerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireMethod(w, r, http.MethodPost) {
			return
		}
		worker, err := s.auth.Authenticate(r)
		if err != nil {
			s.writeError(w, r, http.StatusUnauthorized, err)
			return
		}
		next(w, r, worker)
	}
}

func (s *Server) handleJobsList(w http.ResponseWriter, r *http.Request, _ pro.Worker) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobsListResponse{Jobs: jobs})
}

func (s *Server) handleJobsArchived(w http.ResponseWriter, r *http.Request, _ pro.Worker) {
	jobs, err := s.store.ListArchivedJobs(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobsListResponse{Jobs: jobs})
}

func (s *Server) handleJobsGet(w http.ResponseWriter, r *http.Request, _ pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	view, err := s.store.GetJob(r.Context(), payload.JobID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{Job: view})
}

func (s *Server) handleJobsCreate(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobCreateRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	job, err := s.store.CreateJob(r.Context(), worker, pro.CreateJobOptions{
		Name:         payload.Name,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		MaxWorkers:   payload.MaxWorkers,
		AutoReview:   payload.AutoReview,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	view, err := s.store.GetJob(r.Context(), job.ID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{Job: view})
}

func (s *Server) handleJobsUpdate(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobUpdateRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	view, err := s.store.UpdateJob(r.Context(), worker, payload.JobID, pro.UpdateJobOptions{
		Name:         payload.Name,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		MaxWorkers:   payload.MaxWorkers,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{Job: view})
}

func (s *Server) handleJobsDelete(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteJob(r.Context(), worker, payload.JobID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleJobsJoin(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Join(r.Context(), worker, payload.JobID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleJobsAssign(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobAssignRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Assign(r.Context(), worker, payload.JobID, payload.WorkerID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleJobsLeave(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Leave(r.Context(), worker, payload.JobID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleJobsComplete(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	autoCompleted, err := s.store.MarkComplete(r.Context(), worker, payload.JobID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobCompleteResponse{AutoCompleted: autoCompleted})
}

func (s *Server) handleJobsApprove(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Approve(r.Context(), worker, payload.JobID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleJobsReopen(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Reopen(r.Context(), worker, payload.JobID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleClockIn(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	clockIn, err := s.store.ClockIn(r.Context(), worker, payload.JobID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clockInResponse{ClockIn: clockIn})
}

func (s *Server) handleClockOut(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	var payload jobRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	clockOut, err := s.store.ClockOut(r.Context(), worker, payload.JobID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clockOutResponse{ClockOut: clockOut})
}

func (s *Server) handleClockActive(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	clocks, err := s.store.ActiveClocks(r.Context(), worker)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clockActiveResponse{Clocks: clocks})
}

func (s *Server) handleWorkersList(w http.ResponseWriter, r *http.Request, _ pro.Worker) {
	workers, err := s.store.ListWorkers(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workersListResponse{Workers: workers})
}

func (s *Server) handleWorkersCreate(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	if !worker.IsAdmin() {
		s.writeError(w, r, http.StatusForbidden, pro.ErrForbidden)
		return
	}
	var payload workerCreateRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateWorker(r.Context(), pro.CreateWorkerOptions{
		Username: payload.Username,
		Initials: payload.Initials,
		Role:     payload.Role,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workerResponse{Worker: created})
}

func (s *Server) handleWorkersDelete(w http.ResponseWriter, r *http.Request, worker pro.Worker) {
	if !worker.IsAdmin() {
		s.writeError(w, r, http.StatusForbidden, pro.ErrForbidden)
		return
	}
	var payload workerDeleteRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if payload.WorkerID == worker.ID {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("cannot delete yourself"))
		return
	}
	if err := s.store.DeleteWorker(r.Context(), payload.WorkerID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

// statusForError maps job board errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, pro.ErrJobNotFound),
		errors.Is(err, pro.ErrWorkerNotFound):
		return http.StatusNotFound
	case errors.Is(err, pro.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, pro.ErrEmptyJobName),
		errors.Is(err, pro.ErrJobNameTooLong),
		errors.Is(err, pro.ErrInvalidMaxWorkers),
		errors.Is(err, pro.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, pro.ErrJobClosed),
		errors.Is(err, pro.ErrAlreadyAssigned),
		errors.Is(err, pro.ErrJobFull),
		errors.Is(err, pro.ErrNotAssigned),
		errors.Is(err, pro.ErrWorkerClockedIn),
		errors.Is(err, pro.ErrAlreadyClockedIn),
		errors.Is(err, pro.ErrNotClockedIn),
		errors.Is(err, pro.ErrJobArchived),
		errors.Is(err, pro.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, statusForError(err), err)
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logRequestError(r, status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
}

func (s *Server) logf(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *responseTracker) WriteHeader(status int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *responseTracker) Write(data []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(data)
}
