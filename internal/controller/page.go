package controller

import (
	"errors"
	"sync"
	"time"

	"github.com/topexschool/portal-backend/internal/models"
)

const (
	LoginRedirectDelay    = 500 * time.Millisecond
	RegisterRedirectDelay = 1500 * time.Millisecond
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrPageClosed     = errors.New("form page is closed")
	ErrUnknownField   = errors.New("unknown form field")
)

type State int

const (
	StateIdle State = iota
	// StateInvalid: validation failed, nothing was sent.
	StateInvalid
	// StateFailed: a provider, store or unexpected error ended the attempt.
	StateFailed
	// StateNavigating: the host was notified and navigation is scheduled.
	StateNavigating
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateFailed:
		return "failed"
	case StateNavigating:
		return "navigating"
	default:
		return "idle"
	}
}

type Failure int

const (
	FailureNone Failure = iota
	FailureProvider
	FailureProfile
	FailureUnexpected
)

// Outcome is the result of one submission attempt. Provider is set only for
// FailureProvider.
type Outcome struct {
	State    State
	Errors   models.ValidationErrors
	Success  string
	Failure  Failure
	Provider *models.ProviderError
	User     *models.AuthUser
	Role     models.Role
}

// formState is the part shared by the login and register pages: the error
// map, the loading flag, the success message and the pending navigation.
type formState struct {
	mu      sync.Mutex
	errors  models.ValidationErrors
	success string
	loading bool
	closed  bool
	pending Task
	seq     uint64
	fired   uint64
}

// begin marks the page as loading. Only one submission may be in flight.
func (s *formState) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrPageClosed
	}
	if s.loading {
		return ErrSubmitInFlight
	}
	s.loading = true
	s.success = ""
	return nil
}

func (s *formState) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *formState) setErrors(errs models.ValidationErrors) {
	s.mu.Lock()
	s.errors = errs.Clone()
	s.mu.Unlock()
}

// fail replaces the error map with a single submit error.
func (s *formState) fail(kind Failure, msg string) Outcome {
	errs := models.ValidationErrors{models.SubmitField: msg}
	s.setErrors(errs)
	return Outcome{State: StateFailed, Errors: errs, Failure: kind}
}

func (s *formState) setSuccess(msg string) {
	s.mu.Lock()
	s.success = msg
	s.mu.Unlock()
}

// clearError drops the entry for one field after the user edits it.
func (s *formState) clearError(field string) {
	s.mu.Lock()
	delete(s.errors, field)
	s.mu.Unlock()
}

// schedule replaces any pending navigation. fn is skipped if the page was
// closed, or a newer navigation was scheduled, before it fired.
func (s *formState) schedule(sched Scheduler, delay time.Duration, fn func()) {
	s.mu.Lock()
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	s.seq++
	id := s.seq
	s.mu.Unlock()

	task := sched.Schedule(delay, func() {
		s.mu.Lock()
		current := s.seq == id
		if current {
			s.pending = nil
			s.fired = id
		}
		closed := s.closed
		s.mu.Unlock()
		if current && !closed {
			fn()
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		task.Cancel()
	case s.seq == id && s.fired != id:
		s.pending = task
	}
}

func (s *formState) Errors() models.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

func (s *formState) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *formState) SuccessMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.success
}

// NavigationPending reports whether a scheduled navigation has not fired yet.
func (s *formState) NavigationPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Close tears the page down and cancels any pending navigation.
func (s *formState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}
