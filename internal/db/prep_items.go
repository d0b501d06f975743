package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const prepItemColumns = `id, role_id, title, details, status, created_at, updated_at`

// ListPrepItems retrieves a role's prep checklist, oldest first.
func (db *DB) ListPrepItems(ctx context.Context, roleID uuid.UUID) ([]RolePrepItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+prepItemColumns+` FROM role_prep_items WHERE role_id = $1 ORDER BY created_at ASC`,
		roleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prep items: %w", err)
	}
	defer rows.Close()

	var items []RolePrepItem
	for rows.Next() {
		var item RolePrepItem
		if err := rows.Scan(&item.ID, &item.RoleID, &item.Title, &item.Details,
			&item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prep item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// CreatePrepItem adds an entry to a role's checklist and returns the
// stored row.
func (db *DB) CreatePrepItem(ctx context.Context, item *RolePrepItem) (*RolePrepItem, error) {
	var stored RolePrepItem
	err := db.pool.QueryRow(ctx,
		`INSERT INTO role_prep_items (role_id, title, details, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+prepItemColumns,
		item.RoleID, item.Title, item.Details, item.Status,
	).Scan(&stored.ID, &stored.RoleID, &stored.Title, &stored.Details,
		&stored.Status, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create prep item: %w", err)
	}
	return &stored, nil
}

// GetPrepItemForUser retrieves a prep item only when the enclosing role
// belongs to the user. Returns nil when there is no such item.
func (db *DB) GetPrepItemForUser(ctx context.Context, itemID, userID uuid.UUID) (*RolePrepItem, error) {
	var item RolePrepItem
	err := db.pool.QueryRow(ctx,
		`SELECT p.id, p.role_id, p.title, p.details, p.status, p.created_at, p.updated_at
		 FROM role_prep_items p
		 JOIN roles r ON r.id = p.role_id
		 WHERE p.id = $1 AND r.user_id = $2`,
		itemID, userID,
	).Scan(&item.ID, &item.RoleID, &item.Title, &item.Details,
		&item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prep item: %w", err)
	}
	return &item, nil
}

// UpdatePrepItem replaces a prep item's editable fields and returns the
// stored row.
func (db *DB) UpdatePrepItem(ctx context.Context, item *RolePrepItem) (*RolePrepItem, error) {
	var stored RolePrepItem
	err := db.pool.QueryRow(ctx,
		`UPDATE role_prep_items
		 SET title = $1, details = $2, status = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING `+prepItemColumns,
		item.Title, item.Details, item.Status, item.ID,
	).Scan(&stored.ID, &stored.RoleID, &stored.Title, &stored.Details,
		&stored.Status, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update prep item: %w", err)
	}
	return &stored, nil
}

// DeletePrepItem removes a prep item.
func (db *DB) DeletePrepItem(ctx context.Context, itemID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM role_prep_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete prep item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("prep item not found: %s", itemID)
	}
	return nil
}
