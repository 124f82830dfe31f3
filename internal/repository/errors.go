package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate reports a unique-constraint violation. Services translate it
// into the public conflict error.
var ErrDuplicate = errors.New("duplicate key")

const pqUniqueViolation = "23505"

func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrDuplicate
	}
	return err
}
