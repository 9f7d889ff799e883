package catalog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/catalog"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

func date(year int, month time.Month, day int) *time.Time {
	return pointer.To(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

/*
TestAuthor_Derived covers the display name, lifespan and URL of an author.
*/
func TestAuthor_Derived(t *testing.T) {
	tests := []struct {
		name     string
		author   catalog.Author
		lifespan string
	}{
		{
			name:     "both dates",
			author:   catalog.Author{ID: 7, FirstName: "Jane", FamilyName: "Austen", DateOfBirth: date(1775, time.December, 16), DateOfDeath: date(1817, time.July, 18)},
			lifespan: "Dec 16, 1775 - Jul 18, 1817",
		},
		{
			name:     "living author",
			author:   catalog.Author{ID: 7, FirstName: "Jane", FamilyName: "Austen", DateOfBirth: date(1948, time.March, 4)},
			lifespan: "Mar 4, 1948 - ",
		},
		{
			name:     "no dates",
			author:   catalog.Author{ID: 7, FirstName: "Jane", FamilyName: "Austen"},
			lifespan: " - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "Austen, Jane", tt.author.Name())
			assert.Equal(t, tt.lifespan, tt.author.Lifespan())
			assert.Equal(t, "/catalog/author/7", tt.author.URL())
		})
	}
}

/*
TestAuthor_MarshalJSON checks that derived fields travel with the stored ones.
*/
func TestAuthor_MarshalJSON(t *testing.T) {
	author := catalog.Author{ID: 3, FirstName: "Jane", FamilyName: "Austen", DateOfBirth: date(1775, time.December, 16)}

	raw, err := json.Marshal(author)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Austen, Jane", decoded["name"])
	assert.Equal(t, "/catalog/author/3", decoded["url"])
	assert.Equal(t, "1775-12-16", decoded["date_of_birth_yyyy_mm_dd"])
	assert.Equal(t, "", decoded["date_of_death_yyyy_mm_dd"])
	assert.NotContains(t, decoded, "date_of_death")
}

/*
TestEntityURLs covers the canonical paths of the remaining entities.
*/
func TestEntityURLs(t *testing.T) {
	assert.Equal(t, "/catalog/book/12", catalog.Book{ID: 12}.URL())
	assert.Equal(t, "/catalog/bookinstance/5", catalog.BookInstance{ID: 5}.URL())
	assert.Equal(t, "/catalog/genre/9", catalog.Genre{ID: 9}.URL())
}

func TestBook_HasGenre(t *testing.T) {
	book := catalog.Book{GenreIDs: []int{2, 4}}

	assert.True(t, book.HasGenre(4))
	assert.False(t, book.HasGenre(3))
}

/*
TestBookInstance_DueBack covers the display and input renderings of the due date.
*/
func TestBookInstance_DueBack(t *testing.T) {
	instance := catalog.BookInstance{ID: 1, DueBack: time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)}

	assert.Equal(t, "Mar 4, 2026", instance.DueBackFormatted())
	assert.Equal(t, "2026-03-04", instance.DueBackISO())

	raw, err := json.Marshal(instance)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"due_back_formatted":"Mar 4, 2026"`)
	assert.Contains(t, string(raw), `"url":"/catalog/bookinstance/1"`)
}

/*
TestStatus covers the status form order and the default.
*/
func TestStatus(t *testing.T) {
	assert.Equal(t, []catalog.Status{
		catalog.StatusMaintenance, catalog.StatusAvailable, catalog.StatusLoaned, catalog.StatusReserved,
	}, catalog.Statuses())
	assert.Equal(t, catalog.StatusMaintenance, catalog.DefaultStatus)
}

func TestDeleteOutcome_MarshalText(t *testing.T) {
	raw, err := json.Marshal(catalog.Deletion[catalog.Genre, catalog.Book]{
		Outcome:    catalog.DeleteBlocked,
		Dependents: []*catalog.Book{},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"outcome":"blocked","dependents":[]}`, string(raw))
}
