package user

import "time"

type AccessToken string

func (t AccessToken) String() string {
	return "***"
}

type AccessTokenIssuer interface {
	IssueAccessToken(userID ID, issuedAt time.Time) (token AccessToken, expiresAt time.Time, err error)
	ParseAccessToken(token AccessToken, now time.Time) (ID, error)
}
