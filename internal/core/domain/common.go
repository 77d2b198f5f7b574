package domain

import "time"

// Entity holds the fields every persisted record carries. The storage layer
// assigns all three on insert.
type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetEntity returns the base fields.
func (e Entity) GetEntity() Entity {
	return e
}

// Record is implemented by every entity type T that generic repositories can
// store. WithEntity returns a copy of the record with its base fields replaced.
type Record[T any] interface {
	GetEntity() Entity
	WithEntity(e Entity) T
}
