package catalog

import (
	"encoding/json"
	"time"
)

// mediumDate is the display layout for calendar dates (e.g. "Dec 16, 1775").
const mediumDate = "Jan 2, 2006"

// Author is a person credited with one or more [Book] records.
type Author struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

// Name is the catalogue display name, "family, first".
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders "birth - death"; an unknown date leaves its side empty.
func (a Author) Lifespan() string {
	return formatDate(a.DateOfBirth, mediumDate) + " - " + formatDate(a.DateOfDeath, mediumDate)
}

// URL is the canonical path of the author's detail view.
func (a Author) URL() string {
	return entityPath(pathAuthor, a.ID)
}

// DateOfBirthISO prefills date inputs; empty when unknown.
func (a Author) DateOfBirthISO() string {
	return formatDate(a.DateOfBirth, time.DateOnly)
}

// DateOfDeathISO prefills date inputs; empty when unknown.
func (a Author) DateOfDeathISO() string {
	return formatDate(a.DateOfDeath, time.DateOnly)
}

// MarshalJSON adds the derived display fields.
func (a Author) MarshalJSON() ([]byte, error) {
	type plain Author
	return json.Marshal(struct {
		plain
		Name           string `json:"name"`
		Lifespan       string `json:"lifespan"`
		URL            string `json:"url"`
		DateOfBirthISO string `json:"date_of_birth_yyyy_mm_dd"`
		DateOfDeathISO string `json:"date_of_death_yyyy_mm_dd"`
	}{
		plain:          plain(a),
		Name:           a.Name(),
		Lifespan:       a.Lifespan(),
		URL:            a.URL(),
		DateOfBirthISO: a.DateOfBirthISO(),
		DateOfDeathISO: a.DateOfDeathISO(),
	})
}

func formatDate(date *time.Time, layout string) string {
	if date == nil || date.IsZero() {
		return ""
	}
	return date.Format(layout)
}
