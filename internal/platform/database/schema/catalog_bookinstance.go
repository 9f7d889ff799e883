package schema

// CatalogBookInstanceTable represents the 'book_instance' table
type CatalogBookInstanceTable struct {
	Table   string
	ID      string
	BookID  string
	Imprint string
	Status  string
	DueBack string
}

// CatalogBookInstance is the schema definition for book_instance
var CatalogBookInstance = CatalogBookInstanceTable{
	Table:   "book_instance",
	ID:      "id",
	BookID:  "book_id",
	Imprint: "imprint",
	Status:  "status",
	DueBack: "due_back",
}

func (t CatalogBookInstanceTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Imprint, t.Status, t.DueBack}
}
