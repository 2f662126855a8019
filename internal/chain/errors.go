package chain

import "errors"

var (
	// ErrChainUnavailable is returned when the node could not answer, after retries.
	// The pass that hit it is aborted and retried on the next interval.
	ErrChainUnavailable = errors.New("chain unavailable")

	// ErrInvalidRange is returned when from is above to.
	ErrInvalidRange = errors.New("invalid block range")
)
