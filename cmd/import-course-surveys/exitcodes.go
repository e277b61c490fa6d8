package main

import (
	"github.com/go-faster/errors"

	"github.com/hkn-eecs/hkn/modules/coursesurveys/domain/entities"
	"github.com/hkn-eecs/hkn/modules/coursesurveys/services"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitOther      = 1
	exitValidation = 2
	exitData       = 3
	exitStore      = 4
	// The shell sees an exit status of -1 as 255.
	exitUsage = 255
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitOther
}

// classify picks the exit code for an error returned by an import run.
func classify(err error) int {
	var verr *entities.ValidationError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, services.ErrMissingArgument), errors.Is(err, services.ErrUnknownTable):
		return exitUsage
	case errors.As(err, &verr):
		return exitValidation
	case errors.Is(err, services.ErrUnresolvedReference),
		errors.Is(err, services.ErrMalformedField),
		errors.Is(err, services.ErrUnknownSeason),
		errors.Is(err, entities.ErrNotFound):
		return exitData
	}
	return exitOther
}
