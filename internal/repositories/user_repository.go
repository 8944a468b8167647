package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"aipipeline/internal/models"
)

// ErrDuplicateEmail maps the users_email_key unique violation.
var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := r.DB.QueryRow(q, user.Name, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at,
		       refresh_token, refresh_expires_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at,
		       refresh_token, refresh_expires_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at,
		       refresh_token, refresh_expires_at
		FROM users
		WHERE refresh_token = $1
	`
	return r.scanOne(r.DB.QueryRow(q, token))
}

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `UPDATE users SET refresh_token = $1, refresh_expires_at = $2 WHERE id = $3`
	if _, err := r.DB.Exec(q, token, expiresAt, userID); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// RotateRefresh swaps the old token for a new one in a single statement so a
// reused token cannot rotate twice.
func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users SET refresh_token = $1, refresh_expires_at = $2
		WHERE refresh_token = $3
		RETURNING id, name, email, password_hash, created_at,
		          refresh_token, refresh_expires_at
	`
	return r.scanOne(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		rt  sql.NullString
		rte sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &rt, &rte)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if rt.Valid {
		u.RefreshToken = &rt.String
	}
	if rte.Valid {
		u.RefreshExpiresAt = &rte.Time
	}
	return u, nil
}
