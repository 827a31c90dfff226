package sendpasswordresettoken

import (
	c "authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_ID        = user.ID("test-user-id")
	EMAIL          = c.Email("test@test.test")
	TOKEN          = "5f2b1c0e9a"
	OTHER_TOKEN    = "7a7a7a7a7a"
	VALID_DURATION = 30 * time.Minute
)

var NOW time.Time = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	TokenGenerator *user.FakePasswordResetTokenGenerator
	LinkSender     *user.FakePasswordResetLinkSender
	Now            time.Time
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.TokenGenerator = user.NewFakePasswordResetTokenGenerator(TOKEN, OTHER_TOKEN)
	suite.LinkSender = user.NewFakePasswordResetLinkSender()
	suite.Now = NOW
	baseURL, err := url.Parse("https://auth.example.com")
	suite.Require().Nil(err)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.TokenGenerator,
		suite.LinkSender,
		*baseURL,
		VALID_DURATION,
		func() time.Time { return suite.Now },
	)

	_, err = suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		ID:           USER_ID,
		Username:     "john",
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(NOW.Add(VALID_DURATION), result.ExpiresAt)

	u, ok := suite.UserRepository.GetByID(USER_ID)
	assert.True(ok)
	assert.True(u.PasswordReset.IsPresent)
	assert.Equal(user.PasswordResetToken(TOKEN), u.PasswordReset.Value.Token)
	assert.Equal(NOW.Add(VALID_DURATION), u.PasswordReset.Value.ExpiresAt)

	assert.Equal(1, suite.LinkSender.SentCount())
	sent := suite.LinkSender.LastSent()
	assert.Equal(EMAIL, sent.Email)
	assert.Equal("https://auth.example.com/api/auth/reset-password/"+TOKEN, sent.Link)
}

func (suite *testSuite) TestUserNotFound() {
	_, err := suite.Service.Run(context.Background(), Input{Email: "unknown@test.test"})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.Equal(0, suite.LinkSender.SentCount())
	assert.Equal(0, suite.UserRepository.SaveCount)
}

func (suite *testSuite) TestSecondIssueInvalidatesFirstToken() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Email: EMAIL})
	suite.Require().Nil(err)

	suite.Now = NOW.Add(5 * time.Minute)
	_, err = suite.Service.Run(ctx, Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.UserRepository.GetByValidPasswordResetToken(ctx, TOKEN, suite.Now)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	u, err := suite.UserRepository.GetByValidPasswordResetToken(ctx, OTHER_TOKEN, suite.Now)
	assert.Nil(err)
	assert.Equal(USER_ID, u.ID)
	assert.Equal(suite.Now.Add(VALID_DURATION), u.PasswordReset.Value.ExpiresAt)
}

func (suite *testSuite) TestReissueAfterExpiry() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Email: EMAIL})
	suite.Require().Nil(err)

	suite.Now = NOW.Add(time.Hour)
	_, err = suite.UserRepository.GetByValidPasswordResetToken(ctx, TOKEN, suite.Now)
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)

	_, err = suite.Service.Run(ctx, Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.UserRepository.GetByValidPasswordResetToken(ctx, OTHER_TOKEN, suite.Now)
	assert.Nil(err)
}

func (suite *testSuite) TestLinkSenderErrorKeepsToken() {
	suite.LinkSender.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrPasswordResetLinkNotSent)
	u, err := suite.UserRepository.GetByValidPasswordResetToken(context.Background(), TOKEN, NOW)
	assert.Nil(err)
	assert.Equal(USER_ID, u.ID)
	assert.Equal(1, suite.Logger.Count(logging.ERROR))
}

func (suite *testSuite) TestRepositoryError() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Error(err)
	assert.NotErrorIs(err, user.ErrUserDoesNotExist)
	assert.Equal(0, suite.LinkSender.SentCount())
}

func (suite *testSuite) TestTokenGeneratorError() {
	suite.TokenGenerator.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Error(err)
	assert.Equal(0, suite.UserRepository.SaveCount)
	assert.Equal(0, suite.LinkSender.SentCount())
}

func (suite *testSuite) TestExpiryIsStoredInMilliseconds() {
	suite.Now = NOW.Add(250 * time.Microsecond)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(NOW.Add(VALID_DURATION), result.ExpiresAt)
	u, ok := suite.UserRepository.GetByID(USER_ID)
	assert.True(ok)
	assert.Equal(result.ExpiresAt, u.PasswordReset.Value.ExpiresAt)
}
