package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sbperudesarrollo/authbase/internal/common"
	"github.com/sbperudesarrollo/authbase/internal/dbx"
	"github.com/sbperudesarrollo/authbase/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, role_id, name, first_name, email, password, degree_id, remember_token, phone, cip`

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrNotFound
	}

	query := `SELECT ` + userColumns + `
		 FROM users
		 WHERE name = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		 FROM users
		 WHERE id = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, newHash string) (bool, error) {
	if strings.TrimSpace(newHash) == "" {
		return false, nil
	}

	query := `UPDATE users
		 SET password = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, newHash, id)
	if err != nil {
		return false, storageError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageError(err)
	}

	return affected > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user          models.User
		degreeID      sql.NullInt64
		rememberToken sql.NullString
		phone         sql.NullInt64
		cip           sql.NullInt64
	)

	err := row.Scan(
		&user.ID, &user.RoleID, &user.Username, &user.FirstName, &user.Email,
		&user.PasswordHash, &degreeID, &rememberToken, &phone, &cip,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, storageError(err)
	}

	if degreeID.Valid {
		user.DegreeID = &degreeID.Int64
	}
	if rememberToken.Valid {
		user.RememberToken = &rememberToken.String
	}
	if phone.Valid {
		user.Phone = &phone.Int64
	}
	if cip.Valid {
		user.Cip = &cip.Int64
	}

	return &user, nil
}

// storageError keeps cancellation distinguishable from a broken round trip:
// context errors pass through unwrapped into the chain, everything else is
// classified as common.ErrStorageUnavailable.
func storageError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("query aborted: %w", err)
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}
