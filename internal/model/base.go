// Package model holds the persisted entities shared across layers.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Base is embedded by every stored document. The ID is assigned on insert
// and the timestamps are maintained by the repository.
type Base struct {
	ID        bson.ObjectID `json:"_id" bson:"_id"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// NewBase returns a Base with a fresh ObjectID and both timestamps set to now.
//
// BSON dates carry millisecond precision, so now is truncated to keep the
// value returned on insert identical to what a later read decodes.
func NewBase(now time.Time) Base {
	now = Timestamp(now)
	return Base{
		ID:        bson.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Timestamp normalises t to the precision and zone stored in the database.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
