package model

import "github.com/google/uuid"

// NewID returns a time-ordered task id, so ids sort in creation order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
