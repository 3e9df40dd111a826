package model

import "time"

// Document is a stored raw-text snapshot owned by the host layer. The core
// never sees documents, only their text.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
