package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrValidation              = errors.New("validation failed")
	ErrStartupNotFound         = errors.New("startup profile not found")
	ErrInvestorNotFound        = errors.New("investor profile not found")
	ErrNoInvestors             = errors.New("no investor profiles found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrConfiguration           = errors.New("server configuration error")
	ErrPersistence             = errors.New("persistence error")
	ErrMatchNotFound           = errors.New("match not found")
	ErrInvalidStatusTransition = errors.New("invalid match status transition")
	ErrAnalysisFailed          = errors.New("deck analysis failed")
)

// persistenceError keeps both ErrPersistence and the store error reachable
// through errors.Is.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
