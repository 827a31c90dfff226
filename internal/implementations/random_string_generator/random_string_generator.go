package randomstringgenerator

import (
	"authsvc/internal/core/domain/user"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const PasswordResetTokenBytes = 32

type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: PasswordResetTokenBytes}
}

// GeneratePasswordResetToken returns 32 random bytes encoded as 64 lower-case hex characters.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("could not read random bytes: %w", err)
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
