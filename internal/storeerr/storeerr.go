// Package storeerr specifically handles document store driver errors.
//
// It classifies errors returned by the MongoDB driver (duplicate keys,
// timeouts, network failures) and converts them into the HTTP error
// envelope, with an entity-scoped code such as BOOK_TIMEOUT.
package storeerr

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Code is the category of a store failure.
type Code string

const (
	Other        Code = "other"
	DuplicateKey Code = "duplicate_key"
	Timeout      Code = "timeout"
	Network      Code = "network"
)

// Error is a classified driver error tagged with the operation and the
// collection it was issued against.
//
// Error() returns the driver's own message so callers that surface store
// failures verbatim keep doing so.
type Error struct {
	Code       Code
	Op         string
	Collection string

	driverErr error
}

func (e *Error) Error() string {
	return e.driverErr.Error()
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Wrap classifies err and tags it with op and collection. A nil err stays nil.
func Wrap(err error, collection, op string) error {
	if err == nil {
		return nil
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	return &Error{
		Code:       Classify(err),
		Op:         op,
		Collection: collection,
		driverErr:  err,
	}
}

// Classify maps a driver error to a Code.
func Classify(err error) Code {
	switch {
	case err == nil:
		return Other
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case mongo.IsNetworkError(err):
		return Network
	default:
		return Other
	}
}

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return Other
}
