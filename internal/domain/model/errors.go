package model

import "errors"

var (
	ErrTabNotFound    = errors.New("tab not found")
	ErrNoActiveTab    = errors.New("no active tab")
	ErrNetworkFailure = errors.New("network failure")
)
