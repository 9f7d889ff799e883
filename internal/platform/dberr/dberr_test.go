// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

/*
TestWrap_NotFound verifies that both drivers' empty results map to the shared sentinel.
*/
func TestWrap_NotFound(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "get_author"))

	for _, err := range []error{pgx.ErrNoRows, fmt.Errorf("first: %w", gorm.ErrRecordNotFound)} {
		wrapped := dberr.Wrap(err, "get_author")

		assert.True(t, dberr.IsNotFound(wrapped), err.Error())
		assert.True(t, apperr.IsCode(wrapped, "NOT_FOUND"))
	}
}

/*
TestWrap_Constraints covers the constraint classes of the PostgreSQL and SQLite drivers.
*/
func TestWrap_Constraints(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"pg unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT", 409},
		{"pg foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "CONFLICT", 409},
		{"pg check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, "UNPROCESSABLE", 422},
		{"pg not null", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, "UNPROCESSABLE", 422},
		{"pg too long", &pgconn.PgError{Code: pgerrcode.StringDataRightTruncationDataException}, "UNPROCESSABLE", 422},
		{"pg other", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, "INTERNAL_ERROR", 500},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, "CONFLICT", 409},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, "CONFLICT", 409},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, "CONFLICT", 409},
		{"sqlite check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, "UNPROCESSABLE", 422},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, "UNPROCESSABLE", 422},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, "INTERNAL_ERROR", 500},
		{"unknown", errors.New("connection reset"), "INTERNAL_ERROR", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(fmt.Errorf("exec: %w", tt.err), "create_genre")

			appErr := apperr.As(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.False(t, dberr.IsNotFound(wrapped))
		})
	}
}
