package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"househunters/internal/domain"
	"househunters/internal/domain/models"
)

type AdminSQLRepository struct {
	DB *sql.DB
}

const adminColumns = `id, username, email, password_hash, role, created_at, last_login`

func scanAdmin(sc rowScanner) (models.Admin, error) {
	var (
		a         models.Admin
		role      string
		lastLogin sql.NullTime
	)
	if err := sc.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role, &a.CreatedAt, &lastLogin); err != nil {
		return a, err
	}
	a.Role = domain.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return a, nil
}

func (r AdminSQLRepository) List(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	out := []models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r AdminSQLRepository) getBy(ctx context.Context, column string, arg any) (models.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE `+column+` = ?`, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.NotFoundError{Resource: "admin user", Err: err}
		}
		return a, fmt.Errorf("get admin by %s: %w", column, err)
	}
	return a, nil
}

func (r AdminSQLRepository) GetByID(ctx context.Context, id int64) (models.Admin, error) {
	return r.getBy(ctx, "id", id)
}

func (r AdminSQLRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	return r.getBy(ctx, "username", username)
}

func (r AdminSQLRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	return r.getBy(ctx, "email", email)
}

func (r AdminSQLRepository) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, NOW())`, a.Username, a.Email, a.PasswordHash, string(a.Role))
	if err != nil {
		if IsDuplicateKey(err) {
			return a, domain.ConflictError{Msg: "Username or email already registered", Err: err}
		}
		return a, fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return a, err
	}
	return r.GetByID(ctx, id)
}

func (r AdminSQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete admin %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "admin user"}
	}
	return nil
}

func (r AdminSQLRepository) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE admins SET last_login = NOW() WHERE id = ?`, id)
	return err
}
