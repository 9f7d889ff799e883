// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Both store backends (pgx on PostgreSQL, gorm on SQLite) report through [Wrap],
// so the service layer sees the same [apperr.AppError] whichever store is wired.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. PostgreSQL constraint classes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with the same value already exists", cause)
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict("The record is referenced by, or references, a missing record", cause)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.Unprocessable("A value was rejected by the store", cause)
		}
	}

	// 3. SQLite constraint classes
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperr.Conflict("A record with the same value already exists", cause)
		case sqlite3.ErrConstraintForeignKey:
			return apperr.Conflict("The record is referenced by, or references, a missing record", cause)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return apperr.Unprocessable("A value was rejected by the store", cause)
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// IsNotFound reports whether err is the not-found sentinel produced by [Wrap].
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
