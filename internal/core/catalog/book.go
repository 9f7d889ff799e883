package catalog

import "encoding/json"

// Book is a catalogue title written by exactly one [Author].
//
// Author and Genres are attached by the store on reads that join them; GenreIDs
// is the genre selection used when writing links.
type Book struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	AuthorID int      `json:"author_id"`
	Author   *Author  `json:"author,omitempty"`
	Genres   []*Genre `json:"genres,omitempty"`
	GenreIDs []int    `json:"genre_ids"`
}

// URL is the canonical path of the book's detail view.
func (b Book) URL() string {
	return entityPath(pathBook, b.ID)
}

// MarshalJSON adds the derived url field.
func (b Book) MarshalJSON() ([]byte, error) {
	type plain Book
	return json.Marshal(struct {
		plain
		URL string `json:"url"`
	}{plain: plain(b), URL: b.URL()})
}

// HasGenre reports whether genreID is part of the book's selection.
func (b Book) HasGenre(genreID int) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
