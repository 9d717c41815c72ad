package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, email, username, password_hash, first_name, last_name, role, created_at, updated_at`

func scanUser(scan func(...interface{}) error) (*User, error) {
	u := &User{}
	err := scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, role)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Role)
	return err
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row.Scan)
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row.Scan)
}

func (r *postgresRepository) ListUsers(ctx context.Context, role policy.Role) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE role=$1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email=$1, username=$2, first_name=$3, last_name=$4, role=$5, updated_at=NOW()
		WHERE id=$6`,
		u.Email, u.Username, u.FirstName, u.LastName, u.Role, u.ID)
	return err
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role policy.Role) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2`, role, id)
	return err
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	return err
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	// Profiles, carts and reviews cascade at the schema level.
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *postgresRepository) CreateProfile(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, city, state, address, phone_number)
		VALUES ($1,$2,$3,$4,$5)`,
		p.UserID, p.City, p.State, p.Address, p.PhoneNumber)
	return err
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p := &Profile{}
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, city, state, address, phone_number
		FROM profiles WHERE user_id=$1`, userID).
		Scan(&p.UserID, &p.City, &p.State, &p.Address, &p.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET city=$1, state=$2, address=$3, phone_number=$4
		WHERE user_id=$5`,
		p.City, p.State, p.Address, p.PhoneNumber, p.UserID)
	return err
}
