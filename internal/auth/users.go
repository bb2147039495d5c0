package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Users stores local accounts with bcrypt password hashes.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

func (u *Users) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	var exists int
	err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&exists)
	if err == nil {
		return User{}, ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	usr := User{ID: uuid.NewString(), Username: username}
	_, err = u.db.ExecContext(ctx, `INSERT INTO users (id,username,pass_hash,created_at) VALUES ($1,$2,$3,$4)`,
		usr.ID, usr.Username, string(hash), time.Now().Unix())
	if err != nil {
		return User{}, err
	}
	return usr, nil
}

func (u *Users) Authenticate(ctx context.Context, username, password string) (User, error) {
	var usr User
	var hash string
	err := u.db.QueryRowContext(ctx, `SELECT id,username,pass_hash FROM users WHERE username=$1`,
		strings.TrimSpace(username)).Scan(&usr.ID, &usr.Username, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}
