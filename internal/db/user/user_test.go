package user

import (
	c "authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/db"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("test@test.test")
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
	TOKEN         = user.PasswordResetToken("test-reset-token")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(email c.Email) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		ID:           user.ID(uuid.NewString()),
		Username:     "john",
		Email:        email,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	input := user.CreateUserInput{
		ID:           user.ID(uuid.NewString()),
		Username:     "john",
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	}
	u, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(input.ID, u.ID)
	assert.Equal(input.Username, u.Username)
	assert.Equal(input.Email, u.Email)
	assert.Equal(input.PasswordHash, u.PasswordHash)
	assert.True(input.CreatedAt.Equal(u.CreatedAt))
	assert.True(input.CreatedAt.Equal(u.UpdatedAt))
	assert.False(u.PasswordReset.IsPresent)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	existing := suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		ID:           user.ID(uuid.NewString()),
		Username:     "other",
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("other-hash"),
		CreatedAt:    NOW.Add(time.Hour),
	})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
	stored, err := suite.repo.GetByEmail(context.Background(), EMAIL)
	assert.Nil(err)
	assert.Equal(existing, stored)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), EMAIL)
	suite.Require().Nil(err)
	suite.Require().Equal(created, u)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email("unknown@test.test"))
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestPasswordResetRoundTrip() {
	ctx := context.Background()
	u := suite.createUser(EMAIL)
	expiresAt := NOW.Add(30 * time.Minute)
	u.IssuePasswordReset(TOKEN, expiresAt, NOW)

	assert := suite.Require()
	assert.Nil(suite.repo.Save(ctx, u))

	found, err := suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, NOW.Add(29*time.Minute))
	assert.Nil(err)
	assert.Equal(u.ID, found.ID)
	assert.True(found.PasswordReset.IsPresent)
	assert.Equal(TOKEN, found.PasswordReset.Value.Token)
	assert.True(expiresAt.Equal(found.PasswordReset.Value.ExpiresAt))

	_, err = suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, expiresAt)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	_, err = suite.repo.GetByValidPasswordResetToken(ctx, user.PasswordResetToken("other"), NOW)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	_, err = suite.repo.GetByValidPasswordResetToken(ctx, user.PasswordResetToken(""), NOW)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSaveClearsPasswordReset() {
	ctx := context.Background()
	u := suite.createUser(EMAIL)
	u.IssuePasswordReset(TOKEN, NOW.Add(30*time.Minute), NOW)
	suite.Require().Nil(suite.repo.Save(ctx, u))

	u.SetPassword(user.PasswordHash("new-hash"), NOW.Add(time.Minute))
	assert := suite.Require()
	assert.Nil(suite.repo.Save(ctx, u))
	// Saving the same state twice is harmless.
	assert.Nil(suite.repo.Save(ctx, u))

	stored, err := suite.repo.GetByEmail(ctx, EMAIL)
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), stored.PasswordHash)
	assert.False(stored.PasswordReset.IsPresent)
	assert.True(NOW.Add(time.Minute).Equal(stored.UpdatedAt))

	_, err = suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, NOW)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSaveUnknownUser() {
	err := suite.repo.Save(context.Background(), user.User{
		ID:           user.ID(uuid.NewString()),
		Username:     "ghost",
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
		UpdatedAt:    NOW,
	})
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSaveRejectsEmptyPasswordHash() {
	u := suite.createUser(EMAIL)
	u.PasswordHash = ""

	err := suite.repo.Save(context.Background(), u)
	suite.Require().Error(err)

	stored, err := suite.repo.GetByEmail(context.Background(), EMAIL)
	suite.Require().Nil(err)
	suite.Require().Equal(PASSWORD_HASH, stored.PasswordHash)
}
