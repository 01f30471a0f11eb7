package triage

import "errors"

// Queue operation errors. Every queue operation either fully succeeds or
// fails with one of these and leaves the queue untouched.
var (
	// ErrDuplicatePatient - insert of an identifier already in the queue
	ErrDuplicatePatient = errors.New("patient already in queue")

	// ErrNotFound - update/remove/position for an identifier not in the queue
	ErrNotFound = errors.New("patient not found in queue")

	// ErrEmptyQueue - pop/peek on an empty queue
	ErrEmptyQueue = errors.New("queue is empty")
)
