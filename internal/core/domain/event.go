package domain

import "time"

// ChangeKind names the mutation a change notification describes.
type ChangeKind string

const (
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// EntityUsers is the entity name carried by every users change notification.
const EntityUsers = "users"

// ChangeEvent is published after a record was mutated or removed.
type ChangeEvent struct {
	Entity     string     `json:"entity"`
	Kind       ChangeKind `json:"kind"`
	Payload    Projection `json:"payload"`
	OccurredAt time.Time  `json:"occurred_at"`
}
