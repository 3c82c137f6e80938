package hedgehog

import (
	"errors"
	"fmt"
)

// DatabaseError is the single failure condition surfaced by the persistence
// layer. Err carries the original storage diagnostic.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return "Database error"
	}
	return "Database error: " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError wraps err unless it already is a DatabaseError.
func NewDatabaseError(err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{Err: err}
}

// ValidationError is returned when input is rejected.
type ValidationError struct {
	Message    string
	Violations []Violation
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that no sighting exists with ID.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Hedgehog with ID %d not found", e.ID)
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindPersistence
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindPersistence:
		return "persistence"
	case KindNetwork:
		return "network"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Failure is the classified form of an error.
type Failure struct {
	Kind    Kind
	Message string
}

// Classify maps any error onto the four failure kinds. Persistence failures
// get a generic message; their detail belongs in logs only. Unrecognised
// errors are treated as persistence failures.
func Classify(err error) Failure {
	var (
		valErr *ValidationError
		nfErr  *NotFoundError
		netErr *NetworkError
	)
	switch {
	case errors.As(err, &valErr):
		return Failure{Kind: KindValidation, Message: valErr.Message}
	case errors.As(err, &nfErr):
		return Failure{Kind: KindNotFound, Message: nfErr.Error()}
	case errors.As(err, &netErr):
		return Failure{Kind: KindNetwork, Message: "Network error, please retry"}
	default:
		return Failure{Kind: KindPersistence, Message: "Database error"}
	}
}
