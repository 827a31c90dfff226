package migrations

import (
	"authsvc/internal/core/domain/logging"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	UsersCollection          = "users"
	EmailIndex               = "email_unique"
	PasswordResetTokenIndex  = "reset_password_token"
	namespaceExistsErrorCode = 48
)

type Migration struct {
	Name string
	Up   func(ctx context.Context, db *mongo.Database) error
}

// All steps are idempotent and are applied in order on every start.
var Migrations = []Migration{
	{Name: "001_create_users_collection", Up: createUsersCollection},
	{Name: "002_create_users_email_unique_index", Up: createEmailIndex},
	{Name: "003_create_users_reset_password_token_index", Up: createPasswordResetTokenIndex},
}

func Apply(ctx context.Context, log logging.Logger, db *mongo.Database) error {
	for _, m := range Migrations {
		log.Info(ctx, "Running migration.", logging.Entry("migration", m.Name))
		if err := m.Up(ctx, db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
	}
	log.Info(ctx, "User collection and indexes are up to date.")
	return nil
}

func createUsersCollection(ctx context.Context, db *mongo.Database) error {
	err := db.CreateCollection(ctx, UsersCollection)
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(namespaceExistsErrorCode) {
		return nil
	}
	return err
}

func createEmailIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName(EmailIndex).SetUnique(true),
	})
	return err
}

func createPasswordResetTokenIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
		Options: options.Index().SetName(PasswordResetTokenIndex).SetSparse(true),
	})
	return err
}
