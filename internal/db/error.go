package db

import (
	"errors"
	"fmt"
)

// DuplicateKeyError reports an insert of a document whose key is already
// stored, e.g. an event saved twice.
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Key)
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// NotFoundError reports a missing document. Restore treats it as "nothing
// stored yet" rather than a failure.
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Key)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
