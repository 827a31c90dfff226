package user

import (
	c "authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/mongodb"
	"authsvc/internal/mongodb/migrations"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	EMAIL         = c.Email("test@test.test")
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
	TOKEN         = user.PasswordResetToken("test-reset-token")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

func TestDocumentEncoding(t *testing.T) {
	u := user.User{
		ID:           user.ID("id"),
		Username:     "john",
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
		UpdatedAt:    NOW,
	}
	require.Equal(t, u, decodeUser(encodeUser(u)))

	doc := encodeUser(u)
	require.Nil(t, doc.ResetPasswordToken)
	require.Nil(t, doc.ResetPasswordExpire)

	u.IssuePasswordReset(TOKEN, NOW.Add(30*time.Minute), NOW)
	doc = encodeUser(u)
	require.Equal(t, string(TOKEN), *doc.ResetPasswordToken)
	require.Equal(t, NOW.Add(30*time.Minute), *doc.ResetPasswordExpire)
	require.Equal(t, u, decodeUser(doc))
}

type testSuite struct {
	suite.Suite
	db   *mongo.Database
	repo *MongoUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.db = mongodb.CreateTestDatabase(suite.T())
	suite.Require().Nil(migrations.Apply(context.Background(), logging.NewFakeLogger(), suite.db))
	suite.repo = NewMongoRepository(suite.db)
}

func (suite *testSuite) TearDownTest() {
	_, err := suite.db.Collection(migrations.UsersCollection).DeleteMany(context.Background(), bson.M{})
	suite.Require().Nil(err)
}

func TestMongoUserRepository(t *testing.T) {
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

func (suite *testSuite) TestMigrationsAreIdempotent() {
	suite.Require().Nil(migrations.Apply(context.Background(), logging.NewFakeLogger(), suite.db))
}

func (suite *testSuite) TestCreateAndGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created, u)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email("unknown@test.test"))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	existing := suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		ID:           user.ID(uuid.NewString()),
		Username:     "other",
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("other-hash"),
		CreatedAt:    NOW,
	})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
	stored, err := suite.repo.GetByEmail(context.Background(), EMAIL)
	assert.Nil(err)
	assert.Equal(existing, stored)
}

func (suite *testSuite) TestPasswordResetLifecycle() {
	ctx := context.Background()
	u := suite.createUser(EMAIL)
	u.IssuePasswordReset(TOKEN, NOW.Add(30*time.Minute), NOW)

	assert := suite.Require()
	assert.Nil(suite.repo.Save(ctx, u))

	found, err := suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, NOW.Add(time.Minute))
	assert.Nil(err)
	assert.Equal(u, found)

	_, err = suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, NOW.Add(30*time.Minute))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)

	u.SetPassword(user.PasswordHash("new-hash"), NOW.Add(2*time.Minute))
	assert.Nil(suite.repo.Save(ctx, u))
	assert.Nil(suite.repo.Save(ctx, u))

	_, err = suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, NOW.Add(3*time.Minute))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	stored, err := suite.repo.GetByEmail(ctx, EMAIL)
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), stored.PasswordHash)
	assert.False(stored.PasswordReset.IsPresent)
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

func (suite *testSuite) TestPasswordResetExpiryBoundary() {
	ctx := context.Background()
	u := suite.createUser(EMAIL)
	expiresAt := NOW.Add(30*time.Minute + 1500*time.Microsecond)
	u.IssuePasswordReset(TOKEN, expiresAt, NOW)
	suite.Require().Nil(suite.repo.Save(ctx, u))

	assert := suite.Require()
	lastValid := u.PasswordReset.Value.ExpiresAt.Add(-time.Microsecond)
	found, err := suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, lastValid)
	assert.Nil(err)
	assert.True(u.PasswordReset.Value.ExpiresAt.Equal(found.PasswordReset.Value.ExpiresAt))
	_, err = suite.repo.GetByValidPasswordResetToken(ctx, TOKEN, u.PasswordReset.Value.ExpiresAt)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}
