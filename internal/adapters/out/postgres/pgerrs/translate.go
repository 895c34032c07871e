// Package pgerrs maps database driver failures onto the error taxonomy of the
// service, so callers can tell retryable transaction conflicts from business
// errors without knowing which driver is behind GORM.
package pgerrs

import (
	"errors"
	"fmt"

	"waterdelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes handled by Translate.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
)

// Translate wraps known driver errors:
//   - serialization failures, deadlocks and lock timeouts become errs.ErrTransactionConflict
//   - foreign key and unique violations become *errs.ValueIsInvalidError
//   - check violations become *errs.ValueIsOutOfRangeError
//
// SQLite errors are classified by their extended result code, since the GORM
// sqlite dialector only translates duplicate key and foreign key failures.
// Errors GORM already translated map the same way. Anything else, nil
// included, is returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return translateSQLite(sqliteErr, err)
	}
	var sqliteErrPtr *sqlite3.Error
	if errors.As(err, &sqliteErrPtr) && sqliteErrPtr != nil {
		return translateSQLite(*sqliteErrPtr, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
			return errs.NewValueIsInvalidErrorWithCause("reference", err)
		case errors.Is(err, gorm.ErrCheckConstraintViolated):
			return errs.NewValueIsOutOfRangeErrorWithCause("constraint", nil, nil, nil, err)
		default:
			return err
		}
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%w: %s", errs.ErrTransactionConflict, pgErr.Message)
	case codeForeignKeyViolation, codeUniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(pgErr.ConstraintName, err)
	case codeCheckViolation:
		return errs.NewValueIsOutOfRangeErrorWithCause(pgErr.ConstraintName, pgErr.Detail, nil, nil, err)
	default:
		return err
	}
}

func translateSQLite(sqliteErr sqlite3.Error, err error) error {
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintCheck:
		return errs.NewValueIsOutOfRangeErrorWithCause("constraint", nil, nil, nil, err)
	case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return errs.NewValueIsInvalidErrorWithCause("reference", err)
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return fmt.Errorf("%w: %v", errs.ErrTransactionConflict, err)
	default:
		return err
	}
}
