package identity

import (
	"authsvc/internal/core/domain/user"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateID() user.ID {
	return user.ID(uuid.NewString())
}
