package schema

// CatalogBookGenreTable represents the 'book_genre' join table
type CatalogBookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// CatalogBookGenre is the schema definition for book_genre
var CatalogBookGenre = CatalogBookGenreTable{
	Table:   "book_genre",
	BookID:  "book_id",
	GenreID: "genre_id",
}

func (t CatalogBookGenreTable) Columns() []string {
	return []string{t.BookID, t.GenreID}
}
