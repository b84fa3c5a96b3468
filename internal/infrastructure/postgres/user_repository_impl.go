package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	"github.com/oksasatya/user-management-api/internal/domain/repository"
)

// uniqueViolation is the SQLSTATE raised by the unique index on users.email.
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) List(ctx context.Context, search string, page, perPage int) ([]entity.User, int64, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	args = append(args, perPage, offset)
	limitArg := strconv.Itoa(len(args) - 1)
	offsetArg := strconv.Itoa(len(args))
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users `+where+`
		ORDER BY id
		LIMIT $`+limitArg+` OFFSET $`+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entity.User, 0, perPage)
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByEmail matches case-insensitively, consistent with the unique
// index on lower(email).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findBy(ctx, "lower(email)", strings.ToLower(email))
}

func (r *UserRepository) findBy(ctx context.Context, column string, val any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE `+column+` = $1
	`, val)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.Email, u.Password, u.UpdatedAt, u.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrEmailTaken
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
