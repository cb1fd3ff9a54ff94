package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-recommendation/internal/model"
	"github.com/iliyamo/movie-recommendation/internal/utils"
)

// UserRepo is the credential store.  It owns password hashing: plaintext
// passwords cross its boundary only through Create and VerifyCredentials,
// and the hash is computed exactly once, at insert time.  Update never
// touches password_hash, so re-saving a record cannot re-hash it.
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// allowedUpdates is the fixed set of profile fields a client may change.
// The slice keeps SET-clause ordering deterministic.
var allowedUpdates = []string{"name", "email", "phone", "address", "photo"}

const userColumns = "id,email,username,password_hash,name,phone,address,photo,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Name,
		&u.Phone, &u.Address, &u.Photo, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Create hashes the password and inserts a new user.  The email is
// normalized to lower case so uniqueness is case-insensitive.  The name
// defaults to the username at signup; profile updates can change it later.
func (r *UserRepo) Create(ctx context.Context, email, username, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, username, password_hash, name) VALUES (?,?,?,?)",
		email, username, hash, username)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// VerifyCredentials looks a user up by email and compares the bcrypt hash.
// Both an unknown email and a wrong password collapse into
// ErrInvalidCredentials so the caller cannot tell the cases apart.
func (r *UserRepo) VerifyCredentials(ctx context.Context, email, password string) (model.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Update applies an allow-listed partial update to a user.  Any field
// outside allowedUpdates rejects the entire request with ErrInvalidField
// before a single column is written.  Changing email re-checks uniqueness
// through the same index that guards Create.  updated_at is refreshed on
// every successful update, including an empty one; password_hash is never
// part of this path.
func (r *UserRepo) Update(ctx context.Context, id uint64, fields map[string]string) (model.User, error) {
	for k := range fields {
		if !isAllowedUpdate(k) {
			return model.User{}, ErrInvalidField
		}
	}
	var set []string
	var args []interface{}
	for _, k := range allowedUpdates {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if k == "email" {
			v = strings.ToLower(strings.TrimSpace(v))
		}
		set = append(set, k+"=?")
		args = append(args, v)
	}
	set = append(set, "updated_at=UTC_TIMESTAMP()")
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

func isAllowedUpdate(field string) bool {
	for _, a := range allowedUpdates {
		if a == field {
			return true
		}
	}
	return false
}

// isDuplicateKey reports whether err is a MySQL 1062 unique-key violation.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
