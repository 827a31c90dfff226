package user

import "unicode/utf8"

const MinPasswordLength = 6

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

// ValidateNewPassword checks a password chosen by the user.
// The checks run in a fixed order and the first failing one is returned.
func ValidateNewPassword(password RawPassword, confirmation RawPassword) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(string(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
