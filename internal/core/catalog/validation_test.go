package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

func fieldMessages(errs []apperr.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

/*
TestValidateAuthor covers the name and date rules of the author form.
*/
func TestValidateAuthor(t *testing.T) {
	tests := []struct {
		name       string
		submission catalog.AuthorSubmission
		want       map[string]string
	}{
		{
			name:       "empty names fail once each",
			submission: catalog.AuthorSubmission{},
			want: map[string]string{
				catalog.FieldFirstName:  catalog.MsgFirstNameRequired,
				catalog.FieldFamilyName: catalog.MsgFamilyNameRequired,
			},
		},
		{
			name:       "whitespace only counts as empty",
			submission: catalog.AuthorSubmission{FirstName: "   ", FamilyName: "Austen"},
			want:       map[string]string{catalog.FieldFirstName: catalog.MsgFirstNameRequired},
		},
		{
			name:       "digits are alphanumeric",
			submission: catalog.AuthorSubmission{FirstName: "John123", FamilyName: "Doe"},
			want:       map[string]string{},
		},
		{
			name:       "underscore is rejected",
			submission: catalog.AuthorSubmission{FirstName: "John_Doe", FamilyName: "Smith"},
			want:       map[string]string{catalog.FieldFirstName: catalog.MsgFirstNameAlphanumeric},
		},
		{
			name:       "family name with space is rejected",
			submission: catalog.AuthorSubmission{FirstName: "Ursula", FamilyName: "Le Guin"},
			want:       map[string]string{catalog.FieldFamilyName: catalog.MsgFamilyNameAlphanumeric},
		},
		{
			name: "reduced precision dates are accepted",
			submission: catalog.AuthorSubmission{
				FirstName: "Jane", FamilyName: "Austen",
				DateOfBirth: "1775", DateOfDeath: "1817-07",
			},
			want: map[string]string{},
		},
		{
			name: "bad dates are reported per field",
			submission: catalog.AuthorSubmission{
				FirstName: "Jane", FamilyName: "Austen",
				DateOfBirth: "yesterday", DateOfDeath: "1817-13-40",
			},
			want: map[string]string{
				catalog.FieldDateOfBirth: catalog.MsgDateOfBirthInvalid,
				catalog.FieldDateOfDeath: catalog.MsgDateOfDeathInvalid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := catalog.ValidateAuthor(tt.submission)

			assert.Len(t, errs, len(tt.want))
			assert.Equal(t, tt.want, fieldMessages(errs))
		})
	}
}

/*
TestValidateAuthor_Sanitizes checks trimming and date parsing on an accepted author.
*/
func TestValidateAuthor_Sanitizes(t *testing.T) {
	author, errs := catalog.ValidateAuthor(catalog.AuthorSubmission{
		FirstName:   "  Jane ",
		FamilyName:  "Austen",
		DateOfBirth: "1775-12-16",
	})

	require.Empty(t, errs)
	assert.Equal(t, "Jane", author.FirstName)
	require.NotNil(t, author.DateOfBirth)
	assert.Equal(t, time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC), *author.DateOfBirth)
	assert.Nil(t, author.DateOfDeath)
}

/*
TestValidateBook covers required fields and the genre selection normalization.
*/
func TestValidateBook(t *testing.T) {
	t.Run("all required fields", func(t *testing.T) {
		book, errs := catalog.ValidateBook(catalog.BookSubmission{})

		assert.Equal(t, map[string]string{
			catalog.FieldTitle:   catalog.MsgTitleRequired,
			catalog.FieldAuthor:  catalog.MsgAuthorRequired,
			catalog.FieldSummary: catalog.MsgSummaryRequired,
			catalog.FieldISBN:    catalog.MsgISBNRequired,
		}, fieldMessages(errs))
		assert.NotNil(t, book)
	})

	genres := []struct {
		name  string
		genre catalog.StringList
		want  []int
	}{
		{"missing selection", nil, []int{}},
		{"single value", catalog.StringList{"3"}, []int{3}},
		{"list with duplicates", catalog.StringList{"1", "2", "1"}, []int{1, 2}},
		{"garbage becomes zero", catalog.StringList{"x"}, []int{0}},
	}

	for _, tt := range genres {
		t.Run(tt.name, func(t *testing.T) {
			book, errs := catalog.ValidateBook(catalog.BookSubmission{
				Title: "Emma", Author: "4", Summary: "Matchmaking.", ISBN: "9780141439587",
				Genre: tt.genre,
			})

			require.Empty(t, errs)
			assert.Equal(t, 4, book.AuthorID)
			assert.Equal(t, tt.want, book.GenreIDs)
		})
	}
}

/*
TestValidateBook_Escapes checks that free text is HTML-escaped after trimming.
*/
func TestValidateBook_Escapes(t *testing.T) {
	book, errs := catalog.ValidateBook(catalog.BookSubmission{
		Title: " Pride & Prejudice ", Author: "1", Summary: "<b>Bold</b>", ISBN: "x",
	})

	require.Empty(t, errs)
	assert.Equal(t, "Pride &amp; Prejudice", book.Title)
	assert.Equal(t, "&lt;b&gt;Bold&lt;&#x2F;b&gt;", book.Summary)
}

/*
TestValidateBookInstance covers the copy form rules.
*/
func TestValidateBookInstance(t *testing.T) {
	t.Run("required and date failures", func(t *testing.T) {
		instance, errs := catalog.ValidateBookInstance(catalog.BookInstanceSubmission{DueBack: "soon"})

		assert.Equal(t, map[string]string{
			catalog.FieldBook:    catalog.MsgBookRequired,
			catalog.FieldImprint: catalog.MsgImprintRequired,
			catalog.FieldDueBack: catalog.MsgDueBackInvalid,
		}, fieldMessages(errs))
		assert.Nil(t, instance.BookID)
		assert.True(t, instance.DueBack.IsZero())
	})

	t.Run("accepted copy keeps empty status for defaulting", func(t *testing.T) {
		instance, errs := catalog.ValidateBookInstance(catalog.BookInstanceSubmission{
			Book: "5", Imprint: "Penguin, 2003", DueBack: "2026-01-31",
		})

		require.Empty(t, errs)
		require.NotNil(t, instance.BookID)
		assert.Equal(t, 5, *instance.BookID)
		assert.Equal(t, catalog.Status(""), instance.Status)
		assert.Equal(t, "2026-01-31", instance.DueBack.Format(time.DateOnly))
	})
}

/*
TestValidateGenre covers the minimum name length.
*/
func TestValidateGenre(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  bool
	}{
		{"too short", "Fa", "Fa", true},
		{"short after trim", "  ab  ", "ab", true},
		{"exactly three", "Sci", "Sci", false},
		{"trimmed", "  Fantasy ", "Fantasy", false},
		{"escaped", "Sci & Fi", "Sci &amp; Fi", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genre, errs := catalog.ValidateGenre(catalog.GenreSubmission{Name: tt.input})

			assert.Equal(t, tt.wantName, genre.Name)
			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, catalog.FieldName, errs[0].Field)
				assert.Equal(t, catalog.MsgGenreNameTooShort, errs[0].Message)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
