package scheduler

import "errors"

var (
	// ErrSchedulerAlreadyRunning is returned when Start is called twice
	ErrSchedulerAlreadyRunning = errors.New("scheduler: already running")

	// ErrSchedulerNotRunning is returned when Stop is called before Start
	ErrSchedulerNotRunning = errors.New("scheduler: not running")

	// ErrPassInProgress is returned when a trigger arrives while a pass runs
	ErrPassInProgress = errors.New("scheduler: import pass already in progress")

	// ErrNoClients is returned when the executor has no platform clients
	ErrNoClients = errors.New("scheduler: no platform clients registered")
)
