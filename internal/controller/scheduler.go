package controller

import (
	"time"
)

// Task is a pending scheduled call.
type Task interface {
	// Cancel stops the call from running. It reports false if the call
	// already started or was cancelled before.
	Cancel() bool
}

type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// TimerScheduler runs fn on its own goroutine once delay has elapsed.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(delay time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(delay, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// CompletedTask is returned by schedulers that ran fn before returning.
type CompletedTask struct{}

func (CompletedTask) Cancel() bool { return false }
