package ledger

import "errors"

var (
	// ErrStorageFailure wraps any failure to read from or write to the ledger medium.
	ErrStorageFailure = errors.New("ledger storage failure")

	// ErrCheckpointRegression is returned when a checkpoint lower than the stored one is written.
	ErrCheckpointRegression = errors.New("checkpoint cannot move backwards")

	// ErrTipNotFound is returned by lookups of an unknown tip id.
	ErrTipNotFound = errors.New("tip not found")
)
