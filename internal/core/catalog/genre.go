package catalog

import "encoding/json"

// Genre length bounds. The upper bound is enforced by the store.
const (
	GenreNameMin = 3
	GenreNameMax = 100
)

// Genre classifies books; names are unique.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// URL is the canonical path of the genre's detail view.
func (g Genre) URL() string {
	return entityPath(pathGenre, g.ID)
}

// MarshalJSON adds the derived url field.
func (g Genre) MarshalJSON() ([]byte, error) {
	type plain Genre
	return json.Marshal(struct {
		plain
		URL string `json:"url"`
	}{plain: plain(g), URL: g.URL()})
}
