package postgres

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stayloop/internal/domain/entity"
	"stayloop/pkg/apperr"
	"stayloop/pkg/hash"
)

func newTestRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewUserRepository(mock, hash.New(bcrypt.MinCost), logger), mock
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	digest, err := hash.New(bcrypt.MinCost).Hash(plain)
	require.NoError(t, err)
	return digest
}

var testTime = time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)

func authRows(digest string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "username", "password_hash", "first_name", "last_name", "email", "created_at", "updated_at",
	}).AddRow(int64(1), "bob", digest, "Bob", "Miller", "bob@example.com", testTime, testTime)
}

func publicRows(id int64, username string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "username", "first_name", "last_name", "email", "created_at", "updated_at",
	}).AddRow(id, username, "Bob", "Miller", "bob@example.com", testTime, testTime)
}

func TestAuthenticate_Success(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs("bob").
		WillReturnRows(authRows(mustHash(t, "s3cret-pw")))

	u, err := repo.Authenticate(context.Background(), "bob", "s3cret-pw")

	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.Empty(t, u.Password, "hash must be stripped from the result")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)
	_, unknownErr := repo.Authenticate(context.Background(), "ghost", "whatever")

	mock.ExpectQuery(`SELECT id, username, password_hash`).
		WithArgs("bob").
		WillReturnRows(authRows(mustHash(t, "right-pw")))
	_, wrongPwErr := repo.Authenticate(context.Background(), "bob", "wrong-pw")

	require.Error(t, unknownErr)
	require.Error(t, wrongPwErr)
	assert.True(t, apperr.IsUnauthorized(unknownErr))
	assert.True(t, apperr.IsUnauthorized(wrongPwErr))
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Success(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", pgxmock.AnyArg(), "Bob", "Miller", "bob@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), testTime, testTime))

	u, err := repo.Register(context.Background(), entity.RegisterParams{
		Username:  "bob",
		Password:  "s3cret-pw",
		FirstName: "Bob",
		LastName:  "Miller",
		Email:     "bob@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Bob", u.FirstName)
	assert.Equal(t, "Miller", u.LastName)
	assert.Equal(t, "bob@example.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.Register(context.Background(), entity.RegisterParams{Username: "bob", Password: "pw"})

	require.Error(t, err)
	assert.True(t, apperr.IsBadRequest(err))
	// no insert may happen once the pre-check hits
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_LostRaceUniqueViolation(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", pgxmock.AnyArg(), "", "", "").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Register(context.Background(), entity.RegisterParams{Username: "bob", Password: "pw"})

	require.Error(t, err)
	assert.True(t, apperr.IsBadRequest(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll_OrderedAndStripped(t *testing.T) {
	repo, mock := newTestRepo(t)
	rows := pgxmock.NewRows([]string{
		"id", "username", "first_name", "last_name", "email", "created_at", "updated_at",
	}).
		AddRow(int64(2), "alice", "Alice", "Stone", "alice@example.com", testTime, testTime).
		AddRow(int64(1), "bob", "Bob", "Miller", "bob@example.com", testTime, testTime)
	mock.ExpectQuery(`ORDER BY username ASC`).WillReturnRows(rows)

	users, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SELECT id, username, first_name`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_AttachesRelations(t *testing.T) {
	repo, mock := newTestRepo(t)
	// the three aggregation reads run concurrently
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT id, username, first_name`).
		WithArgs("bob").
		WillReturnRows(publicRows(1, "bob"))
	mock.ExpectQuery(`FROM listings`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "name", "description", "price", "street", "city", "zip", "genre", "created_at",
		}).
			AddRow(int64(3), int64(1), "Loft", "Bright loft", 120.0, "Main St 1", "Berlin", "10115", "apartment", testTime).
			AddRow(int64(7), int64(1), "Cabin", "Quiet cabin", 80.0, "Forest Rd 9", "Tahoe", "96150", "cabin", testTime))
	mock.ExpectQuery(`FROM bookings`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "renter_id", "listing_id", "created_at",
		}).AddRow(int64(5), int64(2), int64(1), int64(9), testTime))
	mock.ExpectQuery(`FROM conversations`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "renter_id", "owner_id", "listing_id"}))

	u, err := repo.Get(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, u.Listings, 2)
	require.Len(t, u.Bookings, 1)
	require.NotNil(t, u.Conversations)
	assert.Empty(t, u.Conversations)
	assert.Less(t, u.Listings[0].ID, u.Listings[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmptyParamsDoesNotTouchStorage(t *testing.T) {
	repo, mock := newTestRepo(t)

	_, err := repo.Update(context.Background(), 1, entity.UpdateUserParams{})

	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Fields(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SET first_name = \$1, email = \$2, updated_at = now\(\)`).
		WithArgs("Robert", "robert@example.com", int64(1)).
		WillReturnRows(publicRows(1, "bob"))

	first := "Robert"
	email := "robert@example.com"
	u, err := repo.Update(context.Background(), 1, entity.UpdateUserParams{FirstName: &first, Email: &email})

	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`SET password_hash = \$1, updated_at = now\(\)`).
		WithArgs(pgxmock.AnyArg(), int64(1)).
		WillReturnRows(publicRows(1, "bob"))

	pw := "new-pw"
	_, err := repo.Update(context.Background(), 1, entity.UpdateUserParams{Password: &pw})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery(`UPDATE users`).
		WithArgs("x@example.com", int64(42)).
		WillReturnError(pgx.ErrNoRows)

	email := "x@example.com"
	_, err := repo.Update(context.Background(), 42, entity.UpdateUserParams{Email: &email})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Remove(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Remove(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
