package db

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func IsNonUniqueErr(err error) bool {
	return pqCode(err) == pqUniqueViolation
}

func IsForeignKeyErr(err error) bool {
	return pqCode(err) == pqForeignKeyViolation
}

func IsCheckErr(err error) bool {
	return pqCode(err) == pqCheckViolation
}
