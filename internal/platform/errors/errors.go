package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNoSnapshot    = errors.New("no runner snapshot")
	ErrNoActiveRun   = errors.New("no active run")
	ErrNoCurrentStep = errors.New("no current step")
)
