package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"machine_maintenance/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, full_name, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, full_name, role, password_hash, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, full_name, role, password_hash, created_at FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(u models.User) (int, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.Exec(insertUserSQL, u.Email, u.FullName, u.Role, u.PasswordHash, createdAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRow(selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRow(selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
