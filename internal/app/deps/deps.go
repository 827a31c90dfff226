package deps

import (
	"authsvc/internal/config"
	dl "authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/db"
	dbuser "authsvc/internal/db/user"
	accesstoken "authsvc/internal/implementations/access_token"
	"authsvc/internal/implementations/email"
	"authsvc/internal/implementations/identity"
	"authsvc/internal/implementations/logging"
	passwordhasher "authsvc/internal/implementations/password_hasher"
	randomstringgenerator "authsvc/internal/implementations/random_string_generator"
	"authsvc/internal/mongodb"
	mongomigrations "authsvc/internal/mongodb/migrations"
	mongouser "authsvc/internal/mongodb/user"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB    *pgxpool.Pool
	Mongo *mongo.Client

	Now func() time.Time

	UserRepository user.UserRepository

	PasswordResetLinkSender     user.PasswordResetLinkSender
	UserIdentityGenerator       user.IdentityGenerator
	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	AccessTokenIssuer           user.AccessTokenIssuer

	SentryEnabled bool
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closeStore := deps.initUserRepository()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.PasswordResetLinkSender = deps.initPasswordResetLinkSender()
	deps.UserIdentityGenerator = identity.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()
	deps.AccessTokenIssuer = accesstoken.NewJWT(deps.Config.Secret, deps.Config.AccessTokenValidDuration)

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeStore,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.LogDevelopment)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initUserRepository() func() {
	switch deps.Config.StoreDriver {
	case config.StoreDriverMongoDB:
		return deps.initMongo()
	default:
		return deps.initPgxPool()
	}
}

func (deps *Deps) initPgxPool() func() {
	if deps.Config.MigrateOnStart {
		if err := db.ApplyMigrations(deps.Config.PostgresqlURL); err != nil {
			panic(err)
		}
		deps.Logger.Info(context.Background(), "PostgreSQL migrations have been applied.")
	}

	pool, err := db.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		panic(err)
	}
	deps.DB = pool
	deps.UserRepository = dbuser.NewPgxRepository(pool)
	deps.Logger.Info(context.Background(), "Connected to PostgreSQL.")

	return func() {
		deps.Logger.Info(context.Background(), "Closing DB connection pool.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection pool closed.")
	}
}

func (deps *Deps) initMongo() func() {
	ctx := context.Background()
	client, err := mongodb.Connect(ctx, deps.Config.MongodbURL)
	if err != nil {
		panic(err)
	}
	deps.Mongo = client
	database := client.Database(deps.Config.MongodbDatabase)

	if deps.Config.MigrateOnStart {
		if err := mongomigrations.Apply(ctx, deps.Logger, database); err != nil {
			panic(err)
		}
	}
	deps.UserRepository = mongouser.NewMongoRepository(database)
	deps.Logger.Info(ctx, "Connected to MongoDB.", dl.Entry("database", deps.Config.MongodbDatabase))

	return func() {
		deps.Logger.Info(context.Background(), "Disconnecting from MongoDB.")
		err := client.Disconnect(context.Background())
		deps.Logger.Info(context.Background(), "Disconnected from MongoDB.", dl.Entry("err", err))
	}
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initPasswordResetLinkSender() user.PasswordResetLinkSender {
	switch deps.Config.Notifier {
	case config.NotifierSES:
		deps.initAwsConfig()
		return email.NewSESSender(
			deps.AwsConfig,
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailPasswordResetTemplate,
		)
	case config.NotifierSMTP:
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     deps.Config.SmtpHost,
			Port:     deps.Config.SmtpPort,
			Username: deps.Config.SmtpUsername,
			Password: deps.Config.SmtpPassword,
			From:     deps.Config.SmtpFrom,
		})
	default:
		deps.Logger.Warning(
			context.Background(),
			"Password reset links are written to the log, configure NOTIFIER to deliver them.",
		)
		return email.NewLogSender(deps.Logger)
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.SentryEnabled = true
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
