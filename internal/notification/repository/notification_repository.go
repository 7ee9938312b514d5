package repository

import (
	"context"
	"database/sql"
	"fmt"

	"buildmart/internal/domain"
	"buildmart/internal/errors"
)

type MySQLNotificationRepository struct {
	db *sql.DB
}

func NewMySQLNotificationRepository(db *sql.DB) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db}
}

func (r *MySQLNotificationRepository) Insert(ctx context.Context, n domain.Notification) (uint, error) {
	query := `INSERT INTO Notifications (userId, kind, message, isRead) VALUES (?, ?, ?, FALSE)`

	result, err := r.db.ExecContext(ctx, query, n.UserID, n.Kind, n.Message)
	if err != nil {
		return 0, fmt.Errorf("inserting notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted notification id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLNotificationRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	query := `
		SELECT id, userId, kind, message, isRead, createdAt
		FROM Notifications
		WHERE userId = ?
		ORDER BY createdAt DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead only touches the caller's own rows.
func (r *MySQLNotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	query := `UPDATE Notifications SET isRead = TRUE WHERE id = ? AND userId = ?`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("notification with id %d not found", id))
	}

	return nil
}
