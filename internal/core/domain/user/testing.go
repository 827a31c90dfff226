package user

import (
	c "authsvc/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeIdentityGenerator struct {
	Prefix string
	count  int
	lock   sync.Mutex
}

func NewFakeIdentityGenerator(prefix string) *FakeIdentityGenerator {
	return &FakeIdentityGenerator{Prefix: prefix}
}

func (g *FakeIdentityGenerator) GenerateID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.count++
	return ID(fmt.Sprintf("%s-%d", g.Prefix, g.count))
}

// FakePasswordResetTokenGenerator returns Tokens one by one and repeats the last one after that.
type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	next        int
	lock        sync.Mutex
}

func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, token := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(token))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Tokens) == 0 {
		panic("no password reset tokens configured")
	}
	ix := g.next
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.next++
	return g.Tokens[ix], nil
}

type SentPasswordResetLink struct {
	Email c.Email
	Link  string
}

type FakePasswordResetLinkSender struct {
	Sent        []SentPasswordResetLink
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetLinkSender() *FakePasswordResetLinkSender {
	return &FakePasswordResetLinkSender{}
}

func (s *FakePasswordResetLinkSender) SendPasswordResetLink(ctx context.Context, email c.Email, link string) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset link to %s", email)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentPasswordResetLink{Email: email, Link: link})
	return nil
}

func (s *FakePasswordResetLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetLinkSender) LastSent() SentPasswordResetLink {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

// FakeAccessTokenIssuer issues tokens of the form "<user id>|<unix expiry>".
type FakeAccessTokenIssuer struct {
	Duration    time.Duration
	ReturnError bool
}

func NewFakeAccessTokenIssuer(duration time.Duration) *FakeAccessTokenIssuer {
	return &FakeAccessTokenIssuer{Duration: duration}
}

func (i *FakeAccessTokenIssuer) IssueAccessToken(userID ID, issuedAt time.Time) (AccessToken, time.Time, error) {
	if i.ReturnError {
		return "", time.Time{}, fmt.Errorf("could not issue access token")
	}
	expiresAt := issuedAt.Add(i.Duration)
	return AccessToken(fmt.Sprintf("%s|%d", userID, expiresAt.Unix())), expiresAt, nil
}

func (i *FakeAccessTokenIssuer) ParseAccessToken(token AccessToken, now time.Time) (ID, error) {
	var expiresAt int64
	parts := strings.SplitN(string(token), "|", 2)
	if len(parts) != 2 {
		return "", ErrInvalidAccessToken
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &expiresAt); err != nil {
		return "", ErrInvalidAccessToken
	}
	if !now.Before(time.Unix(expiresAt, 0)) {
		return "", ErrInvalidAccessToken
	}
	return ID(parts[0]), nil
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	SaveCount   int
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:           input.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
		UpdatedAt:    input.CreatedAt,
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByValidPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.CanResetPassword(token, now) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Save(ctx context.Context, u User) error {
	if r.ReturnError {
		return fmt.Errorf("could not save user %s", u.ID)
	}
	if err := u.Validate(); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, existing := range r.Users {
		if existing.ID == u.ID {
			r.Users[ix] = u
			r.SaveCount++
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByID(id ID) (u User, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, true
		}
	}
	return u, false
}
