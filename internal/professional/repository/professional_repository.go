package repository

import (
	"context"
	"database/sql"
	"fmt"

	"buildmart/internal/domain"
	"buildmart/internal/errors"
)

type MySQLProfessionalRepository struct {
	db *sql.DB
}

func NewMySQLProfessionalRepository(db *sql.DB) *MySQLProfessionalRepository {
	return &MySQLProfessionalRepository{db: db}
}

const professionalColumns = `id, userId, profession, company, city, bio, rating, createdAt, updatedAt`

func (r *MySQLProfessionalRepository) Insert(ctx context.Context, p domain.Professional) (uint, error) {
	query := `
		INSERT INTO Professionals (userId, profession, company, city, bio, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Profession, p.Company, p.City, p.Bio, p.Rating,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting professional: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted professional id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLProfessionalRepository) FindByID(ctx context.Context, id uint) (*domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM Professionals WHERE id = ?`

	var p domain.Professional
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Profession, &p.Company, &p.City, &p.Bio,
		&p.Rating, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("professional with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying professional by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLProfessionalRepository) Search(ctx context.Context, profession domain.Role, city string) ([]domain.Professional, error) {
	query := `SELECT ` + professionalColumns + ` FROM Professionals WHERE 1=1`
	args := []any{}

	if profession != "" {
		query += ` AND profession = ?`
		args = append(args, profession)
	}
	if city != "" {
		query += ` AND city = ?`
		args = append(args, city)
	}
	query += ` ORDER BY rating DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching professionals: %w", err)
	}
	defer rows.Close()

	professionals := []domain.Professional{}
	for rows.Next() {
		var p domain.Professional
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Profession, &p.Company, &p.City, &p.Bio,
			&p.Rating, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning professional row: %w", err)
		}
		professionals = append(professionals, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating professional rows: %w", err)
	}

	return professionals, nil
}
