package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"stayloop/internal/domain/entity"
	"stayloop/internal/domain/repository"
	"stayloop/pkg/apperr"
	"stayloop/pkg/hash"
)

const publicUserColumns = "id, username, first_name, last_name, email, created_at, updated_at"

// uniqueViolation is the Postgres error code for a unique-constraint hit.
const uniqueViolation = "23505"

// UserRepository is the sole writer of user rows. The duplicate-username
// pre-check is only a fast path for a friendlier error; the actual guarantee
// is the UNIQUE constraint on users.username, whose violation is translated
// to the same bad-request error.
type UserRepository struct {
	db     DB
	hasher *hash.Hasher
	logger *logrus.Logger
	agg    *Aggregator
}

func NewUserRepository(db DB, hasher *hash.Hasher, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		hasher: hasher,
		logger: logger,
		agg:    NewAggregator(db),
	}
}

// Authenticate looks up the account by username and verifies the password.
// Unknown username and wrong password yield the same error, so the response
// shape cannot be used to enumerate usernames.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, first_name, last_name, email, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName,
		&u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}

	if !r.hasher.Verify(password, u.Password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	public := u.Public()
	return &public, nil
}

// Register creates an account. The stored password is a bcrypt digest; the
// plaintext never touches storage.
func (r *UserRepository) Register(ctx context.Context, p entity.RegisterParams) (*entity.User, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, p.Username,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, apperr.BadRequest("username already taken")
	}

	digest, err := r.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Username, digest, p.FirstName, p.LastName, p.Email)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			// lost the race against a concurrent registration
			return nil, apperr.BadRequest("username already taken")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	r.logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	return u, nil
}

// GetAll returns every account ordered by username ascending, hashes
// stripped.
func (r *UserRepository) GetAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+publicUserColumns+`
		FROM users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
			&u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Get fetches an account by username and attaches its listings, bookings,
// and conversations.
func (r *UserRepository) Get(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, `
		SELECT `+publicUserColumns+`
		FROM users
		WHERE username = $1
	`, username)
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}

	if err := r.agg.Attach(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies a partial update. A password, if present, is re-hashed
// before it reaches the SET clause; absent fields are never turned into
// parameters.
func (r *UserRepository) Update(ctx context.Context, id int64, p entity.UpdateUserParams) (*entity.User, error) {
	if p.Empty() {
		return nil, apperr.Validation("no fields to update")
	}

	assigns := make([]Assignment, 0, 4)
	if p.FirstName != nil {
		assigns = append(assigns, Assignment{Field: "firstname", Value: *p.FirstName})
	}
	if p.LastName != nil {
		assigns = append(assigns, Assignment{Field: "lastname", Value: *p.LastName})
	}
	if p.Email != nil {
		assigns = append(assigns, Assignment{Field: "email", Value: *p.Email})
	}
	if p.Password != nil {
		digest, err := r.hasher.Hash(*p.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		assigns = append(assigns, Assignment{Field: "password", Value: digest})
	}

	set, args, err := BuildSetClause(assigns, userColumns, 1)
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	u := &entity.User{}
	sql := fmt.Sprintf(`
		UPDATE users
		SET %s, updated_at = now()
		WHERE id = $%d
		RETURNING %s
	`, set, len(args), publicUserColumns)
	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName,
		&u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Remove deletes an account by id.
func (r *UserRepository) Remove(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	r.logger.WithField("user_id", id).Info("user removed")
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
