package domain

import "errors"

// Error classes returned by the planner. Concrete errors wrap one of these, so
// callers classify with errors.Is and still get a precise message.
var (
	// ErrConfiguration reports invalid interest strategy parameters.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidAmount reports a negative cash amount, or an invalid rule amount,
	// age range or escalation rate.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDuplicateAccount reports an account name that is already registered.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrUnknownAccount reports an account name that is not registered.
	ErrUnknownAccount = errors.New("account not found")

	// ErrInvalidIndex reports a rule index outside the rule list.
	ErrInvalidIndex = errors.New("invalid rule index")

	// ErrSessionNotFound reports a planning session id that is not registered.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidProjection reports a projection target the planner refuses to run.
	ErrInvalidProjection = errors.New("invalid projection")
)
