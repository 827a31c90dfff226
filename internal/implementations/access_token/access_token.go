package accesstoken

import (
	"authsvc/internal/core/domain/user"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultValidDuration = time.Hour

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// JWT issues HS256 signed bearer tokens carrying the user id.
type JWT struct {
	secret        []byte
	validDuration time.Duration
}

func NewJWT(secret string, validDuration time.Duration) *JWT {
	if secret == "" {
		panic("JWT secret must not be empty.")
	}
	if validDuration == 0 {
		validDuration = DefaultValidDuration
	}
	return &JWT{secret: []byte(secret), validDuration: validDuration}
}

func (j *JWT) IssueAccessToken(userID user.ID, issuedAt time.Time) (user.AccessToken, time.Time, error) {
	expiresAt := issuedAt.Add(j.validDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: string(userID),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign access token: %w", err)
	}
	return user.AccessToken(signed), expiresAt, nil
}

func (j *JWT) ParseAccessToken(token user.AccessToken, now time.Time) (user.ID, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Join(user.ErrInvalidAccessToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", user.ErrInvalidAccessToken
	}
	return user.ID(claims.UserID), nil
}
