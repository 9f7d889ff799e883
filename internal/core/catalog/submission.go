package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// # Raw Submissions
//
// Submissions hold form values exactly as received. They are decoded from JSON
// bodies or bound from url-encoded forms and only become entities through the
// validation functions.

// AuthorSubmission is the raw author form.
type AuthorSubmission struct {
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

// Bind fills the submission from form values.
func (s *AuthorSubmission) Bind(values url.Values) {
	s.FirstName = values.Get(FieldFirstName)
	s.FamilyName = values.Get(FieldFamilyName)
	s.DateOfBirth = values.Get(FieldDateOfBirth)
	s.DateOfDeath = values.Get(FieldDateOfDeath)
}

// BookSubmission is the raw book form. Author is the author's identifier as text.
type BookSubmission struct {
	Title   string     `json:"title"`
	Author  Text       `json:"author"`
	Summary string     `json:"summary"`
	ISBN    string     `json:"isbn"`
	Genre   StringList `json:"genre"`
}

// Bind fills the submission from form values; repeated genre keys form the selection.
func (s *BookSubmission) Bind(values url.Values) {
	s.Title = values.Get(FieldTitle)
	s.Author = Text(values.Get(FieldAuthor))
	s.Summary = values.Get(FieldSummary)
	s.ISBN = values.Get(FieldISBN)
	s.Genre = StringList(values[FieldGenre])
}

// BookInstanceSubmission is the raw book copy form. Book is the book's identifier as text.
type BookInstanceSubmission struct {
	Book    Text   `json:"book"`
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
	DueBack string `json:"due_back"`
}

// Bind fills the submission from form values.
func (s *BookInstanceSubmission) Bind(values url.Values) {
	s.Book = Text(values.Get(FieldBook))
	s.Imprint = values.Get(FieldImprint)
	s.Status = values.Get(FieldStatus)
	s.DueBack = values.Get(FieldDueBack)
}

// GenreSubmission is the raw genre form.
type GenreSubmission struct {
	Name string `json:"name"`
}

// Bind fills the submission from form values.
func (s *GenreSubmission) Bind(values url.Values) {
	s.Name = values.Get(FieldName)
}

// # Lenient JSON Scalars

// Text is a form value that may arrive as a JSON string or number.
type Text string

// UnmarshalJSON accepts a string, a number, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	raw, err := decodeLoose(data)
	if err != nil {
		return err
	}

	text, err := scalarText(raw)
	if err != nil {
		return err
	}

	*t = Text(text)
	return nil
}

// StringList is a multi-valued form field.
//
// A missing or null value is an empty selection and a single scalar is a
// one-element selection, so both behave like the equivalent list.
type StringList []string

// UnmarshalJSON accepts null, a string, a number, or an array of those.
func (l *StringList) UnmarshalJSON(data []byte) error {
	raw, err := decodeLoose(data)
	if err != nil {
		return err
	}

	switch value := raw.(type) {
	case nil:
		*l = nil
	case []any:
		list := make(StringList, 0, len(value))
		for _, item := range value {
			text, err := scalarText(item)
			if err != nil {
				return err
			}
			list = append(list, text)
		}
		*l = list
	default:
		text, err := scalarText(value)
		if err != nil {
			return err
		}
		*l = StringList{text}
	}

	return nil
}

func decodeLoose(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func scalarText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("catalog: expected a string or number, got %T", value)
}
