package syncer

import (
	"errors"
	"fmt"
)

var (
	// ErrInitialPoll matches every *InitialPollError.
	ErrInitialPoll = errors.New("initial poll failed")

	// ErrNotSyncing is returned by Tick when no session is active.
	ErrNotSyncing = errors.New("sync is not active")
)

// InitialPollError aborts a sync-on transition. The controller stays idle.
type InitialPollError struct {
	Err error
}

func (e *InitialPollError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInitialPoll, e.Err)
}

func (e *InitialPollError) Unwrap() error {
	return e.Err
}

func (e *InitialPollError) Is(target error) bool {
	return target == ErrInitialPoll
}
