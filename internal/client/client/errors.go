package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrRequestFailed   = errors.New("request failed")
	ErrInvalidResponse = errors.New("invalid API response format")
)
