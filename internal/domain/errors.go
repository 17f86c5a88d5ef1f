package domain

import "errors"

// Failed requests wrap one of ErrTransport, ErrHTTPStatus or ErrParse
var (
	ErrTransport  = errors.New("transport failure")
	ErrHTTPStatus = errors.New("unsuccessful http status")
	ErrParse      = errors.New("failed to parse response")

	ErrNotFound               = errors.New("not found")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
)
