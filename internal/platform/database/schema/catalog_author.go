package schema

// CatalogAuthorTable represents the 'author' table
type CatalogAuthorTable struct {
	Table       string
	ID          string
	FirstName   string
	FamilyName  string
	DateOfBirth string
	DateOfDeath string
}

// CatalogAuthor is the schema definition for author
var CatalogAuthor = CatalogAuthorTable{
	Table:       "author",
	ID:          "id",
	FirstName:   "first_name",
	FamilyName:  "family_name",
	DateOfBirth: "date_of_birth",
	DateOfDeath: "date_of_death",
}

func (t CatalogAuthorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.FamilyName, t.DateOfBirth, t.DateOfDeath}
}
