package model

import (
	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// Normalize replaces a nil test sequence with an empty one so that a record
// whose last attempt was removed still serializes as "tests": [].
func (i *Individual) Normalize() {
	if i.Tests == nil {
		i.Tests = []TestAttempt{}
	}
}
