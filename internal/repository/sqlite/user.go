package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
)

// UserRepo implements repository.UserRepository on the shared connection.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates the sqlite-backed user repository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `username, name, password_hash, token, token_expired_at, created_at, updated_at`

// Create inserts a new user. The caller checks for duplicates first (to
// return the right client-facing message), but the PRIMARY KEY constraint
// still backstops a race between two registrations of the same name.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (username, name, password_hash, token, token_expired_at, created_at, updated_at)
		 VALUES (?, ?, ?, NULL, NULL, ?, ?)`,
		user.Username,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %s: %w", user.Username, err)
	}
	return nil
}

// ExistsByUsername reports whether the username is taken.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking username %s: %w", username, err)
	}
	return count > 0, nil
}

// GetByUsername retrieves a user by primary key.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", username, err)
	}
	return user, nil
}

// FindByToken resolves a session token by exact match.
// (nil, nil) when nobody holds the token — the authenticator turns that into
// its deliberately uninformative 401.
func (r *UserRepo) FindByToken(ctx context.Context, token string) (*model.User, error) {
	row := r.db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE token = ?`, token)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: finding user by token: %w", err)
	}
	return user, nil
}

// UpdateToken stores a fresh session token and expiry in one UPDATE.
// Both columns move together, keeping the both-or-neither invariant. No
// read-modify-write: concurrent logins simply overwrite each other and the
// last one wins.
func (r *UserRepo) UpdateToken(ctx context.Context, username, token string, expiredAt time.Time) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE users SET token = ?, token_expired_at = ?, updated_at = ? WHERE username = ?`,
		token,
		expiredAt.UnixMilli(),
		time.Now(),
		username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating token for %s: %w", username, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("User")
	}
	return nil
}

// ClearToken drops the session. Clearing a user who is already logged out is
// a no-op, not an error — logout is idempotent at the storage level.
func (r *UserRepo) ClearToken(ctx context.Context, username string) error {
	_, err := r.db.conn.ExecContext(ctx,
		`UPDATE users SET token = NULL, token_expired_at = NULL, updated_at = ? WHERE username = ?`,
		time.Now(),
		username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: clearing token for %s: %w", username, err)
	}
	return nil
}

// scanUser reads a user row, mapping the nullable token columns back to the
// model's zero-value convention.
func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var token sql.NullString
	var expiredAt sql.NullInt64

	err := row.Scan(
		&u.Username,
		&u.Name,
		&u.PasswordHash,
		&token,
		&expiredAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Token = stringValue(token)
	if expiredAt.Valid {
		u.TokenExpired = time.UnixMilli(expiredAt.Int64)
	}
	return &u, nil
}
