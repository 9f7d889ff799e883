package catalog

import (
	"encoding/json"
	"time"
)

// # Copy Status

// Status is the circulation state of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// DefaultStatus is applied to copies submitted without a status.
const DefaultStatus = StatusMaintenance

// Statuses lists every status in form display order.
func Statuses() []Status {
	return []Status{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}
}

// BookInstance is a physical copy of a [Book] that can be borrowed.
//
// BookID is nil for a copy detached from any catalogue entry.
type BookInstance struct {
	ID      int       `json:"id"`
	BookID  *int      `json:"book_id"`
	Book    *Book     `json:"book,omitempty"`
	Imprint string    `json:"imprint"`
	Status  Status    `json:"status"`
	DueBack time.Time `json:"due_back"`
}

// URL is the canonical path of the copy's detail view.
func (bi BookInstance) URL() string {
	return entityPath(pathBookInstance, bi.ID)
}

// DueBackFormatted renders the due date for display (e.g. "Mar 4, 2026").
func (bi BookInstance) DueBackFormatted() string {
	return formatDate(&bi.DueBack, mediumDate)
}

// DueBackISO prefills date inputs.
func (bi BookInstance) DueBackISO() string {
	return formatDate(&bi.DueBack, time.DateOnly)
}

// MarshalJSON adds the derived display fields.
func (bi BookInstance) MarshalJSON() ([]byte, error) {
	type plain BookInstance
	return json.Marshal(struct {
		plain
		URL              string `json:"url"`
		DueBackFormatted string `json:"due_back_formatted"`
		DueBackISO       string `json:"due_back_yyyy_mm_dd"`
	}{
		plain:            plain(bi),
		URL:              bi.URL(),
		DueBackFormatted: bi.DueBackFormatted(),
		DueBackISO:       bi.DueBackISO(),
	})
}
