package domain

import (
	"errors"
	"time"
)

// Field names of the public projection.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldPassword = "password"
)

// PublicFields is the allowlist applied to every record leaving the service.
var PublicFields = []string{FieldID, FieldName, FieldPassword}

var ErrUserNotFound = errors.New("user not found")
var ErrValidation = errors.New("validation failed")

// UserRecord is a stored user. ID is assigned by the storage adapter on insert.
// Extra holds any fields the storage layer carries beyond the known ones.
type UserRecord struct {
	ID        string
	Name      string
	Password  Password
	CreatedAt time.Time
	UpdatedAt time.Time
	Extra     map[string]any
}

// Document flattens the record into a field map, metadata included.
func (r *UserRecord) Document() map[string]any {
	doc := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		doc[k] = v
	}
	doc[FieldID] = r.ID
	doc[FieldName] = r.Name
	doc[FieldPassword] = r.Password.Value()
	if !r.CreatedAt.IsZero() {
		doc["created_at"] = r.CreatedAt
	}
	if !r.UpdatedAt.IsZero() {
		doc["updated_at"] = r.UpdatedAt
	}
	return doc
}

// Projection is the externally visible shape of a record.
type Projection map[string]any

// ID returns the projected id, or "" when it was not part of the projection.
func (p Projection) ID() string {
	id, _ := p[FieldID].(string)
	return id
}

// SeedUsers are the starter records inserted into an empty collection.
func SeedUsers() []UserRecord {
	return []UserRecord{
		{Name: "Shreyansh", Password: TextPassword("1234")},
		{Name: "Rahul", Password: TextPassword("123")},
	}
}
