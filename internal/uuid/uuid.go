// Package uuid wraps google/uuid so that IDs can be bound from
// query strings and URI parameters by gin.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements the uuid.Parse method
// from https://pkg.go.dev/github.com/google/uuid#Parse
// for UUID
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// IsSet reports if the UUID is not the Nil UUID.
func (u UUID) IsSet() bool {
	return u != Nil
}

// Ptr returns a pointer to the wrapped UUID, or nil for the Nil UUID.
//
// Optional references in the models are pointers, this converts
// query parameters to them.
func (u UUID) Ptr() *google_uuid.UUID {
	if !u.IsSet() {
		return nil
	}

	id := u.UUID
	return &id
}
