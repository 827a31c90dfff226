package user

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/db"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `
	id::text,
	username,
	email,
	password_hash,
	password_reset_token,
	password_reset_expires_at,
	created_at,
	updated_at`

const createUser = `
INSERT INTO "user" (id, username, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING` + userColumns

const getUserByEmail = `SELECT` + userColumns + ` FROM "user" WHERE email = $1`

const getUserByValidPasswordResetToken = `SELECT` + userColumns + `
FROM "user"
WHERE password_reset_token = $1 AND password_reset_expires_at > $2`

const saveUser = `
UPDATE "user" SET
	username = $2,
	email = $3,
	password_hash = $4,
	password_reset_token = $5,
	password_reset_expires_at = $6,
	updated_at = $7
WHERE id = $1`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		string(input.ID),
		input.Username,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if isEmailUniqueViolation(err) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByEmail, string(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) GetByValidPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	now time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	u, err = scanUser(r.db.QueryRow(ctx, getUserByValidPasswordResetToken, string(token), now))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxUserRepository) Save(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	token, expiresAt := encodePasswordReset(u.PasswordReset)
	tag, err := r.db.Exec(
		ctx,
		saveUser,
		string(u.ID),
		u.Username,
		string(u.Email),
		string(u.PasswordHash),
		token,
		expiresAt,
		u.UpdatedAt,
	)
	if isEmailUniqueViolation(err) {
		return user.ErrEmailAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func isEmailUniqueViolation(err error) bool {
	var errEmailUniqueConstraint *pgconn.PgError
	if errors.As(err, &errEmailUniqueConstraint) {
		return errEmailUniqueConstraint.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
			errEmailUniqueConstraint.ConstraintName == EMAIL_CONSTRAINT_NAME
	}
	return false
}

func encodePasswordReset(reset c.Optional[user.PasswordReset]) (pgtype.Text, pgtype.Timestamptz) {
	if !reset.IsPresent {
		return pgtype.Text{Status: pgtype.Null}, pgtype.Timestamptz{Status: pgtype.Null}
	}
	return pgtype.Text{String: string(reset.Value.Token), Status: pgtype.Present},
		pgtype.Timestamptz{Time: reset.Value.ExpiresAt, Status: pgtype.Present}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id, username, email, passwordHash string
		resetToken                        pgtype.Text
		resetExpiresAt                    pgtype.Timestamptz
		createdAt, updatedAt              time.Time
	)
	err = row.Scan(&id, &username, &email, &passwordHash, &resetToken, &resetExpiresAt, &createdAt, &updatedAt)
	if err != nil {
		return u, err
	}
	u = user.User{
		ID:           user.ID(id),
		Username:     username,
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}
	if resetToken.Status == pgtype.Present && resetExpiresAt.Status == pgtype.Present {
		u.PasswordReset = c.Some(user.PasswordReset{
			Token:     user.PasswordResetToken(resetToken.String),
			ExpiresAt: resetExpiresAt.Time.UTC(),
		})
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
