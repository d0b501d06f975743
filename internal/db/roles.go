package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const roleColumns = `id, user_id, title, company, level, description, status, created_at, updated_at`

func scanRole(row pgx.Row) (*Role, error) {
	var r Role
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Company, &r.Level,
		&r.Description, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRoles retrieves all roles for a user, newest first.
func (db *DB) ListRoles(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Company, &r.Level,
			&r.Description, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// CreateRole creates a role for a user and returns the stored row.
func (db *DB) CreateRole(ctx context.Context, r *Role) (*Role, error) {
	stored, err := scanRole(db.pool.QueryRow(ctx,
		`INSERT INTO roles (user_id, title, company, level, description, status)
		 VALUES ($1, $2, $3, $4, $5, 'active')
		 RETURNING `+roleColumns,
		r.UserID, r.Title, r.Company, r.Level, r.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return stored, nil
}

// GetRoleForUser retrieves a role only when it belongs to the user.
// Returns nil when the role does not exist or is owned by someone else.
func (db *DB) GetRoleForUser(ctx context.Context, roleID, userID uuid.UUID) (*Role, error) {
	role, err := scanRole(db.pool.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = $1 AND user_id = $2`,
		roleID, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// UpdateRole replaces a role's editable fields and returns the stored row.
func (db *DB) UpdateRole(ctx context.Context, r *Role) (*Role, error) {
	stored, err := scanRole(db.pool.QueryRow(ctx,
		`UPDATE roles
		 SET title = $1, company = $2, level = $3, description = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+roleColumns,
		r.Title, r.Company, r.Level, r.Description, r.ID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return stored, nil
}

// DeleteRole deletes a role together with its interviews and prep items.
func (db *DB) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM role_interviews WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to delete role interviews: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM role_prep_items WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to delete role prep items: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("role not found: %s", roleID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit role deletion: %w", err)
	}
	return nil
}
