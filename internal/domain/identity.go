package domain

import "github.com/google/uuid"

// A player account as seen by the identity service at the time of the lookup.
type PlayerIdentity struct {
	UUID uuid.UUID
	Name string
}
