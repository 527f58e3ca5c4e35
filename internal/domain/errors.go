package domain

import "errors"

var (
	// ErrValidation signals malformed or unacceptable search parameters.
	ErrValidation = errors.New("invalid search parameters")
	// ErrMissingFilter signals that no discriminating filter was supplied
	// under a filter-required policy.
	ErrMissingFilter = errors.New("missing q or city parameter")
	// ErrDataSource signals that the backing store was unreachable or
	// rejected the compiled query.
	ErrDataSource = errors.New("data source failure")
)
