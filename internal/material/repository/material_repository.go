package repository

import (
	"context"
	"database/sql"
	"fmt"

	"buildmart/internal/domain"
	"buildmart/internal/errors"
)

type MySQLMaterialRepository struct {
	db *sql.DB
}

func NewMySQLMaterialRepository(db *sql.DB) *MySQLMaterialRepository {
	return &MySQLMaterialRepository{db: db}
}

const materialColumns = `id, dealerId, name, category, unit, priceCents, stock, isActive, createdAt, updatedAt`

func (r *MySQLMaterialRepository) Insert(ctx context.Context, material domain.Material) (uint, error) {
	query := `
		INSERT INTO Materials (dealerId, name, category, unit, priceCents, stock, isActive)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		material.DealerID, material.Name, material.Category, material.Unit,
		material.PriceCents, material.Stock, material.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting material: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted material id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLMaterialRepository) FindByID(ctx context.Context, id uint) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM Materials WHERE id = ?`

	var m domain.Material
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.DealerID, &m.Name, &m.Category, &m.Unit,
		&m.PriceCents, &m.Stock, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying material by id: %w", err)
	}

	return &m, nil
}

// FindByIDForUpdate locks the material row for the duration of the checkout
// transaction.
func (r *MySQLMaterialRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM Materials WHERE id = ? FOR UPDATE`

	var m domain.Material
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.DealerID, &m.Name, &m.Category, &m.Unit,
		&m.PriceCents, &m.Stock, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying material for update: %w", err)
	}

	return &m, nil
}

func (r *MySQLMaterialRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uint, quantity int) error {
	query := `UPDATE Materials SET stock = stock - ? WHERE id = ? AND stock >= ?`

	result, err := tx.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return fmt.Errorf("decrementing material stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewConflictError(fmt.Sprintf("insufficient stock for material %d", id))
	}

	return nil
}

func (r *MySQLMaterialRepository) Update(ctx context.Context, material domain.Material) error {
	query := `
		UPDATE Materials
		SET name = ?, category = ?, unit = ?, priceCents = ?, stock = ?, isActive = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		material.Name, material.Category, material.Unit, material.PriceCents,
		material.Stock, material.IsActive, material.ID,
	)
	if err != nil {
		return fmt.Errorf("updating material: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", material.ID))
	}

	return nil
}

func (r *MySQLMaterialRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Materials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("material with id %d not found", id))
	}

	return nil
}

func (r *MySQLMaterialRepository) Search(ctx context.Context, dealerID uint, category string) ([]domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM Materials WHERE isActive = TRUE`
	args := []any{}

	if dealerID > 0 {
		query += ` AND dealerId = ?`
		args = append(args, dealerID)
	}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching materials: %w", err)
	}
	defer rows.Close()

	materials := []domain.Material{}
	for rows.Next() {
		var m domain.Material
		err := rows.Scan(
			&m.ID, &m.DealerID, &m.Name, &m.Category, &m.Unit,
			&m.PriceCents, &m.Stock, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rows: %w", err)
	}

	return materials, nil
}
