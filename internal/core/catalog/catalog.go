// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the library catalogue: authors, books, book copies and genres.

It owns the whole lifecycle of those records, from raw form submissions through
validation, referential checks and persistence, to guarded deletion.

Core Responsibility:

  - Model: Entities with their derived display values (names, lifespans, paths).
  - Validation: Field rules that sanitize input and collect every failing field.
  - Relationships: Dependent lookups and the delete guard (authors, books, genres).
  - Lifecycle: Create, update and delete outcomes the presentation layer renders.

Storage is reached exclusively through [Repository]; PostgreSQL and SQLite
implementations live alongside the domain.
*/
package catalog

import (
	"errors"
	"strconv"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// # Field Identifiers

// Submission field names. They double as the keys of [apperr.FieldError].
const (
	FieldFirstName   = "first_name"
	FieldFamilyName  = "family_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldSummary     = "summary"
	FieldISBN        = "isbn"
	FieldGenre       = "genre"
	FieldBook        = "book"
	FieldImprint     = "imprint"
	FieldStatus      = "status"
	FieldDueBack     = "due_back"
	FieldName        = "name"
)

// # Canonical Paths

const (
	PathCatalog       = "/catalog"
	PathAuthors       = "/catalog/authors"
	PathBooks         = "/catalog/books"
	PathBookInstances = "/catalog/bookinstances"
	PathGenres        = "/catalog/genres"

	pathAuthor       = "/catalog/author/"
	pathBook         = "/catalog/book/"
	pathBookInstance = "/catalog/bookinstance/"
	pathGenre        = "/catalog/genre/"
)

func entityPath(prefix string, id int) string {
	return prefix + strconv.Itoa(id)
}

// ErrPartialWrite marks a book whose row was written while its genre links were not.
//
// The row is left in place; callers detect the condition with [errors.Is].
var ErrPartialWrite = errors.New("catalog: book saved but genre links were not")

// # Lifecycle Outcomes

// Result is the outcome of a create or update submission.
//
// When Errors is non-empty nothing was written and Entity holds the sanitized
// submission for redisplay. Existing reports that a create resolved to a record
// that was already stored (genre deduplication).
type Result[T any] struct {
	Entity   *T                  `json:"entity"`
	Errors   []apperr.FieldError `json:"errors,omitempty"`
	Existing bool                `json:"existing,omitempty"`
}

// Rejected reports whether the submission failed validation.
func (r *Result[T]) Rejected() bool {
	return len(r.Errors) > 0
}

func rejected[T any](entity *T, errs []apperr.FieldError) *Result[T] {
	return &Result[T]{Entity: entity, Errors: errs}
}

func accepted[T any](entity *T) *Result[T] {
	return &Result[T]{Entity: entity}
}

// DeleteOutcome classifies a delete request.
type DeleteOutcome int

const (
	// DeletePending is a confirmation view: nothing was removed and nothing blocks removal.
	DeletePending DeleteOutcome = iota

	// DeleteBlocked means dependents still reference the record.
	DeleteBlocked

	// DeleteRemoved means the record is gone.
	DeleteRemoved

	// DeleteMissing means the record did not exist; callers redirect to the listing.
	DeleteMissing
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeletePending:
		return "pending"
	case DeleteBlocked:
		return "blocked"
	case DeleteRemoved:
		return "removed"
	case DeleteMissing:
		return "missing"
	}
	return "unknown"
}

// MarshalText renders the outcome by name in JSON payloads.
func (o DeleteOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Deletion carries a delete outcome with the data a confirmation view needs.
type Deletion[T any, D any] struct {
	Outcome    DeleteOutcome `json:"outcome"`
	Entity     *T            `json:"entity,omitempty"`
	Dependents []*D          `json:"dependents"`
}
