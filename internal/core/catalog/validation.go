package catalog

import (
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/convert"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

// # Validation Messages

const (
	MsgFirstNameRequired      = "First name must be specified."
	MsgFirstNameAlphanumeric  = "First name has non-alphanumeric characters."
	MsgFamilyNameRequired     = "Family name must be specified."
	MsgFamilyNameAlphanumeric = "Family name has non-alphanumeric characters."
	MsgDateOfBirthInvalid     = "Invalid date of birth"
	MsgDateOfDeathInvalid     = "Invalid date of death"

	MsgTitleRequired   = "Title must not be empty."
	MsgAuthorRequired  = "Author must not be empty."
	MsgSummaryRequired = "Summary must not be empty."
	MsgISBNRequired    = "ISBN must not be empty"

	MsgBookRequired    = "Book must be specified"
	MsgImprintRequired = "Imprint must be specified"
	MsgDueBackInvalid  = "Invalid date"

	MsgGenreNameTooShort = "Genre name must contain at least 3 characters"

	MsgAuthorUnknown  = "Author must reference an existing author"
	MsgGenreUnknown   = "Genre must reference an existing genre"
	MsgBookUnknown    = "Book must reference an existing book"
	MsgGenreNameTaken = "Genre with this name already exists"
)

// # Submission Validation
//
// Every function below is pure: it trims and escapes each field, checks the
// field rules, and returns the sanitized entity together with one message per
// failing field. The entity is returned even when rejected so forms can be
// redisplayed with what the user typed.

// ValidateAuthor checks an author submission.
func ValidateAuthor(submission AuthorSubmission) (*Author, []apperr.FieldError) {
	validator := &validate.Validator{}

	firstName := validate.Trim(submission.FirstName)
	validator.Required(FieldFirstName, firstName, MsgFirstNameRequired).
		Alphanumeric(FieldFirstName, firstName, MsgFirstNameAlphanumeric)

	familyName := validate.Trim(submission.FamilyName)
	validator.Required(FieldFamilyName, familyName, MsgFamilyNameRequired).
		Alphanumeric(FieldFamilyName, familyName, MsgFamilyNameAlphanumeric)

	author := &Author{
		FirstName:   validate.Escape(firstName),
		FamilyName:  validate.Escape(familyName),
		DateOfBirth: validator.Date(FieldDateOfBirth, submission.DateOfBirth, MsgDateOfBirthInvalid),
		DateOfDeath: validator.Date(FieldDateOfDeath, submission.DateOfDeath, MsgDateOfDeathInvalid),
	}

	return author, validator.Errors()
}

// ValidateBook checks a book submission.
//
// The author reference only has to be present here; whether it names a stored
// author is decided by the service. Genre values are sanitized one by one and
// collapsed into a de-duplicated selection.
func ValidateBook(submission BookSubmission) (*Book, []apperr.FieldError) {
	validator := &validate.Validator{}

	title := validate.Trim(submission.Title)
	validator.Required(FieldTitle, title, MsgTitleRequired)

	authorRef := validate.Trim(string(submission.Author))
	validator.Required(FieldAuthor, authorRef, MsgAuthorRequired)

	summary := validate.Trim(submission.Summary)
	validator.Required(FieldSummary, summary, MsgSummaryRequired)

	isbn := validate.Trim(submission.ISBN)
	validator.Required(FieldISBN, isbn, MsgISBNRequired)

	book := &Book{
		Title:    validate.Escape(title),
		Summary:  validate.Escape(summary),
		ISBN:     validate.Escape(isbn),
		AuthorID: convert.ToInt(validate.Escape(authorRef)),
		GenreIDs: genreSelection(submission.Genre),
	}

	return book, validator.Errors()
}

// ValidateBookInstance checks a book copy submission.
//
// Status passes through sanitized; the store restricts it to [Statuses]. An
// empty status or due date is left empty for the service to default.
func ValidateBookInstance(submission BookInstanceSubmission) (*BookInstance, []apperr.FieldError) {
	validator := &validate.Validator{}

	bookRef := validate.Trim(string(submission.Book))
	validator.Required(FieldBook, bookRef, MsgBookRequired)

	imprint := validate.Trim(submission.Imprint)
	validator.Required(FieldImprint, imprint, MsgImprintRequired)

	instance := &BookInstance{
		Imprint: validate.Escape(imprint),
		Status:  Status(validate.Sanitize(submission.Status)),
	}

	if bookRef != "" {
		instance.BookID = pointer.To(convert.ToInt(validate.Escape(bookRef)))
	}

	if dueBack := validator.Date(FieldDueBack, submission.DueBack, MsgDueBackInvalid); dueBack != nil {
		instance.DueBack = *dueBack
	}

	return instance, validator.Errors()
}

// ValidateGenre checks a genre submission.
func ValidateGenre(submission GenreSubmission) (*Genre, []apperr.FieldError) {
	validator := &validate.Validator{}

	name := validate.Trim(submission.Name)
	validator.MinLen(FieldName, name, GenreNameMin, MsgGenreNameTooShort)

	return &Genre{Name: validate.Escape(name)}, validator.Errors()
}

// genreSelection converts sanitized genre values to identifiers, keeping the
// first occurrence of each. Unparseable values become 0 and fail the existence check.
func genreSelection(values StringList) []int {
	ids := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))

	for _, value := range values {
		id := convert.ToInt(validate.Sanitize(value))
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
