package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userSelect = `SELECT id, name, email, phone_number, COALESCE(avatar_url, ''), role, created_on, updated_on FROM users`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.AvatarURL, &u.Role, &createdOn, &updatedOn); err != nil {
		return nil, err
	}
	u.CreatedOn = formatTime(createdOn)
	u.UpdatedOn = formatTime(updatedOn)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone_number, avatar_url, role, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now()
	u.CreatedOn = formatTime(now)
	u.UpdatedOn = u.CreatedOn
	return r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PhoneNumber, u.AvatarURL, u.Role, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, phone_number=$3, avatar_url=$4, role=$5, updated_on=$6 WHERE id=$7`
	now := time.Now()
	u.UpdatedOn = formatTime(now)
	return requireAffected(r.db.ExecContext(ctx, query, u.Name, u.Email, u.PhoneNumber, u.AvatarURL, u.Role, now, u.ID))
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int32, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone_number ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Role != "" {
		where += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, filter.Role)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM users` + where
	logger.DatabaseCall(ctx, "users.count", "query", countQuery)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		logger.DatabaseResult(ctx, "users.count", err)
		return nil, 0, err
	}

	limit, offset := pageArgs(filter.Page, filter.PageSize)
	query := userSelect + where + fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, count, rows.Err()
}
