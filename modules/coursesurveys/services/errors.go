package services

import "github.com/go-faster/errors"

var (
	ErrMissingArgument     = errors.New("missing argument")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnknownSeason       = errors.New("unknown season")
	ErrMalformedField      = errors.New("malformed field")
	ErrUnknownTable        = errors.New("unknown table")
)
