package prestapp

import "time"

type Modelable interface {
	Exists() bool
}

// A Model is the essential data points for primary ID-based models in a prestapp database,
// indicating when a record was created and last updated.
//
// Neither Users nor Loans are deleted, so Model carries no soft delete column.
type Model struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Exists asserts whether the Model was read from or written to the database.
func (m Model) Exists() bool { return !m.CreatedAt.IsZero() }
