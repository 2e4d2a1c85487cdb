package db

import (
	"errors"

	"github.com/lib/pq"
)

var ErrBookingAlreadyExists = errors.New("a booking with this idempotency key already exists")

const postgresUniqueValueViolationErrorCode = "23505"

func isErrorUniqueViolation(err error) bool {
	var psqlErr *pq.Error
	return errors.As(err, &psqlErr) && psqlErr.Code == postgresUniqueValueViolationErrorCode
}
