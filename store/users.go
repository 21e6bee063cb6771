package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/mbolis/reqlicit/model"
)

var ErrUserExists = errors.New("user already exists")

type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db}
}

func (u *Users) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.db.QueryContext(ctx, `
		SELECT id, username, email, role
		FROM user
		ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "users.list")
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user := model.User{}
		if err = rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role); err != nil {
			return nil, errors.Wrap(err, "users.list.scan")
		}
		users = append(users, user)
	}
	return users, errors.Wrap(rows.Err(), "users.list.rows")
}

// Create stores a new account with a bcrypt hash of user.Password. The
// returned user has its id set and the password cleared.
func (u *Users) Create(ctx context.Context, user model.User) (model.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	switch {
	case user.Username == "":
		return model.User{}, &ValidationError{errors.New("username is required")}
	case user.Password == "":
		return model.User{}, &ValidationError{errors.New("password is required")}
	case !user.Role.Valid():
		return model.User{}, &ValidationError{fmt.Errorf("unknown role %q", user.Role)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "users.create.hash")
	}

	err = u.db.QueryRowContext(ctx, `
		INSERT INTO user (username, email, password_hash, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`,
		user.Username,
		user.Email,
		hash,
		user.Role,
	).Scan(&user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserExists
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "users.create")
	}

	user.Password = ""
	return user, nil
}

func (u *Users) Delete(ctx context.Context, username string) error {
	res, err := u.db.ExecContext(ctx, "DELETE FROM user WHERE username = ?", username)
	if err != nil {
		return errors.Wrap(err, "users.delete")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "users.delete.verify")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func (u *Users) Role(ctx context.Context, username string) (model.Role, error) {
	var role model.Role
	err := u.db.
		QueryRowContext(ctx, "SELECT role FROM user WHERE username = ?", username).
		Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return role, errors.Wrap(err, "users.role")
}

// Authenticate checks a username and password pair against the stored hash.
func (u *Users) Authenticate(ctx context.Context, username, password string) error {
	var hash []byte
	err := u.db.
		QueryRowContext(ctx, "SELECT password_hash FROM user WHERE username = ?", username).
		Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "users.authenticate")
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// EnsureAdmin creates the bootstrap admin account unless a user with that
// name already exists. It reports whether an account was created.
func (u *Users) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := u.Create(ctx, model.User{Username: username, Password: password, Role: model.AdminRole})
	if errors.Is(err, ErrUserExists) {
		return false, nil
	}
	return err == nil, err
}
