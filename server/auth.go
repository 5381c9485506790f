package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Austuin/HoneyBadgerTool/pro"
)

// WorkerHeader carries the caller's identity. Authentication itself is
// handled upstream; the server only resolves the header against the
// worker registry.
const WorkerHeader = "X-Worker"

var errUnauthenticated = errors.New("unknown worker")

// Authenticator resolves the worker making a request.
type Authenticator interface {
	Authenticate(r *http.Request) (pro.Worker, error)
}

// headerAuthenticator trusts an authenticating front proxy and reads
// the worker's ID or username out of the request headers.
type headerAuthenticator struct {
	store *pro.Store
}

// NewHeaderAuthenticator returns an Authenticator that resolves the
// X-Worker header against the store's worker registry.
func NewHeaderAuthenticator(store *pro.Store) Authenticator {
	return &headerAuthenticator{store: store}
}

func (a *headerAuthenticator) Authenticate(r *http.Request) (pro.Worker, error) {
	value := strings.TrimSpace(r.Header.Get(WorkerHeader))
	if value == "" {
		return pro.Worker{}, fmt.Errorf("%w: missing %s header", errUnauthenticated, WorkerHeader)
	}

	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		worker, err := a.store.GetWorker(r.Context(), id)
		if err != nil {
			return pro.Worker{}, fmt.Errorf("%w: %s", errUnauthenticated, value)
		}
		return worker, nil
	}

	worker, err := a.store.GetWorkerByUsername(r.Context(), value)
	if err != nil {
		return pro.Worker{}, fmt.Errorf("%w: %s", errUnauthenticated, value)
	}
	return worker, nil
}
