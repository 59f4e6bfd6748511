package domain

import "github.com/juju/errors"

const (
	// ErrEmptyResult is a domain failure: the series request succeeded but
	// carried no rows.
	ErrEmptyResult = errors.ConstError("Empty result")

	// ErrLinkDisabled is returned when a derived action has no bound URL.
	ErrLinkDisabled = errors.ConstError("link is disabled")
)
