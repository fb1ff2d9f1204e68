package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"order-api/models"
)

const mysqlDuplicateEntry = 1062

const selectUser = `SELECT user_id, first_name, last_name, email, password, created_at FROM users`

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: utcNow}
}

// FindByID returns nil without an error when no user has the given id.
func (r *UserRepository) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, selectUser+` WHERE user_id = ?`, userID)
}

// FindByEmail returns nil without an error when the email is unknown.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = ?`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return &user, nil
}

// Insert stores a new user. passwordHash must already be hashed. A unique
// key violation on email is reported as models.ErrConflict.
func (r *UserRepository) Insert(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		UserID:    uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: r.now(),
	}

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO users (user_id, first_name, last_name, email, password, created_at)
VALUES (:user_id, :first_name, :last_name, :email, :password, :created_at)`,
		user,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, errors.WithStack(models.ErrConflict)
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func utcNow() time.Time {
	return time.Now().UTC()
}
