package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrStatusChanged means a conditional status update found the row in a
	// different status than the caller expected.
	ErrStatusChanged = errors.New("match status changed concurrently")
)
