package user

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/mongodb/migrations"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type userDocument struct {
	ID                  string     `bson:"_id"`
	Username            string     `bson:"username"`
	Email               string     `bson:"email"`
	Password            string     `bson:"password"`
	ResetPasswordToken  *string    `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty"`
	CreatedAt           time.Time  `bson:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt"`
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &MongoUserRepository{collection: db.Collection(migrations.UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	doc := userDocument{
		ID:        string(input.ID),
		Username:  input.Username,
		Email:     string(input.Email),
		Password:  string(input.PasswordHash),
		CreatedAt: input.CreatedAt,
		UpdatedAt: input.CreatedAt,
	}
	u = decodeUser(doc)
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}

	_, err = r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return user.User{}, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.findOne(ctx, bson.M{"email": string(email)})
}

func (r *MongoUserRepository) GetByValidPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	now time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	return r.findOne(ctx, bson.M{
		"resetPasswordToken":  string(token),
		"resetPasswordExpire": bson.M{"$gt": now},
	})
}

// Save replaces the whole document, which is atomic for a single document.
func (r *MongoUserRepository) Save(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": string(u.ID)}, encodeUser(u))
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrEmailAlreadyExists
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (u user.User, err error) {
	var doc userDocument
	err = r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	u = decodeUser(doc)
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func encodeUser(u user.User) userDocument {
	doc := userDocument{
		ID:        string(u.ID),
		Username:  u.Username,
		Email:     string(u.Email),
		Password:  string(u.PasswordHash),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.PasswordReset.IsPresent {
		token := string(u.PasswordReset.Value.Token)
		expiresAt := u.PasswordReset.Value.ExpiresAt
		doc.ResetPasswordToken = &token
		doc.ResetPasswordExpire = &expiresAt
	}
	return doc
}

func decodeUser(doc userDocument) user.User {
	u := user.User{
		ID:           user.ID(doc.ID),
		Username:     doc.Username,
		Email:        c.Email(doc.Email),
		PasswordHash: user.PasswordHash(doc.Password),
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}
	if doc.ResetPasswordToken != nil && doc.ResetPasswordExpire != nil {
		u.PasswordReset = c.Some(user.PasswordReset{
			Token:     user.PasswordResetToken(*doc.ResetPasswordToken),
			ExpiresAt: doc.ResetPasswordExpire.UTC(),
		})
	}
	return u
}
