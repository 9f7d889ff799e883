package catalog_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
)

/*
TestBookSubmission_GenreShapes checks that a missing, scalar or list genre
field decodes to the equivalent selection.
*/
func TestBookSubmission_GenreShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want catalog.StringList
	}{
		{"missing", `{"title":"Emma"}`, nil},
		{"null", `{"genre":null}`, nil},
		{"scalar string", `{"genre":"3"}`, catalog.StringList{"3"}},
		{"scalar number", `{"genre":3}`, catalog.StringList{"3"}},
		{"list", `{"genre":["1",2]}`, catalog.StringList{"1", "2"}},
		{"empty list", `{"genre":[]}`, catalog.StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var submission catalog.BookSubmission
			require.NoError(t, json.Unmarshal([]byte(tt.body), &submission))

			assert.Equal(t, tt.want, submission.Genre)
		})
	}
}

func TestBookSubmission_RejectsObjects(t *testing.T) {
	var submission catalog.BookSubmission

	assert.Error(t, json.Unmarshal([]byte(`{"genre":{"id":1}}`), &submission))
	assert.Error(t, json.Unmarshal([]byte(`{"author":[1]}`), &submission))
}

/*
TestText_Number checks that identifiers sent as JSON numbers keep their digits.
*/
func TestText_Number(t *testing.T) {
	var submission catalog.BookInstanceSubmission
	require.NoError(t, json.Unmarshal([]byte(`{"book":12345678901,"imprint":"x"}`), &submission))

	assert.Equal(t, catalog.Text("12345678901"), submission.Book)
}

/*
TestBind checks the url-encoded form binding, including repeated genre keys.
*/
func TestBind(t *testing.T) {
	values := url.Values{
		"title":   {"Emma"},
		"author":  {"4"},
		"summary": {"Matchmaking."},
		"isbn":    {"9780141439587"},
		"genre":   {"1", "2"},
	}

	var book catalog.BookSubmission
	book.Bind(values)

	assert.Equal(t, catalog.BookSubmission{
		Title: "Emma", Author: "4", Summary: "Matchmaking.", ISBN: "9780141439587",
		Genre: catalog.StringList{"1", "2"},
	}, book)

	var author catalog.AuthorSubmission
	author.Bind(url.Values{"first_name": {"Jane"}, "family_name": {"Austen"}, "date_of_birth": {"1775-12-16"}})
	assert.Equal(t, "1775-12-16", author.DateOfBirth)

	var genre catalog.GenreSubmission
	genre.Bind(url.Values{"name": {"Fantasy"}})
	assert.Equal(t, "Fantasy", genre.Name)
}
