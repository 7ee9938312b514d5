package repository

import (
	"context"
	"database/sql"
	"fmt"

	"buildmart/internal/domain"
	"buildmart/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, orderNumber, customerId, dealerId, status, paymentStatus,
	       dealerConfirmed, customerConfirmed, totalCents, advancePaidCents,
	       dueAmountCents, isAdvancePaid, isDuePaid, createdAt, updatedAt`

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerID, &order.DealerID,
		&order.Status, &order.PaymentStatus, &order.DealerConfirmed,
		&order.CustomerConfirmed, &order.TotalCents, &order.AdvancePaidCents,
		&order.DueAmountCents, &order.IsAdvancePaid, &order.IsDuePaid,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (orderNumber, customerId, dealerId, status, paymentStatus,
		                    dealerConfirmed, customerConfirmed, totalCents,
		                    advancePaidCents, dueAmountCents, isAdvancePaid, isDuePaid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.OrderNumber, order.CustomerID, order.DealerID, order.Status,
		order.PaymentStatus, order.DealerConfirmed, order.CustomerConfirmed,
		order.TotalCents, order.AdvancePaidCents, order.DueAmountCents,
		order.IsAdvancePaid, order.IsDuePaid,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// ConfirmDealer sets the dealer flag and promotes the status to verified in
// the same statement when the customer flag is already set. A single
// conditional UPDATE keeps racing confirmations from losing the promotion.
// Returns false when the order is no longer pending.
func (r *MySQLOrderRepository) ConfirmDealer(ctx context.Context, id uint) (bool, error) {
	query := `
		UPDATE Orders
		SET dealerConfirmed = TRUE,
		    status = IF(customerConfirmed, 'verified', status)
		WHERE id = ? AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("confirming order from dealer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLOrderRepository) ConfirmCustomer(ctx context.Context, id uint) (bool, error) {
	query := `
		UPDATE Orders
		SET customerConfirmed = TRUE,
		    status = IF(dealerConfirmed, 'verified', status)
		WHERE id = ? AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("confirming order from customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ApplyAdvancePayment records the 30% milestone. The WHERE clause makes the
// write conditional on the verified, unpaid state so a repeat or a racing
// call affects zero rows.
func (r *MySQLOrderRepository) ApplyAdvancePayment(ctx context.Context, id uint, advanceCents, dueCents int64) (bool, error) {
	query := `
		UPDATE Orders
		SET isAdvancePaid = TRUE,
		    advancePaidCents = ?,
		    dueAmountCents = ?,
		    paymentStatus = 'partially_paid',
		    status = 'paid'
		WHERE id = ? AND status = 'verified' AND isAdvancePaid = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, advanceCents, dueCents, id)
	if err != nil {
		return false, fmt.Errorf("applying advance payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLOrderRepository) ApplyDuePayment(ctx context.Context, id uint) (bool, error) {
	query := `
		UPDATE Orders
		SET isDuePaid = TRUE,
		    dueAmountCents = 0,
		    paymentStatus = 'paid',
		    status = 'processing'
		WHERE id = ? AND isAdvancePaid = TRUE AND isDuePaid = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("applying due payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// UpdateStatus moves the order from one status to another, conditional on
// the expected current status.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.OrderStatus) (bool, error) {
	query := `UPDATE Orders SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) FindPending(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE status = 'pending' ORDER BY createdAt`
	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) FindConfirmed(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM Orders
		WHERE dealerConfirmed = TRUE AND customerConfirmed = TRUE
		ORDER BY createdAt`
	return r.queryOrders(ctx, query)
}

func (r *MySQLOrderRepository) FindByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE customerId = ? ORDER BY createdAt DESC`
	return r.queryOrders(ctx, query, customerID)
}

func (r *MySQLOrderRepository) FindByDealer(ctx context.Context, dealerID uint) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE dealerId = ? ORDER BY createdAt DESC`
	return r.queryOrders(ctx, query, dealerID)
}

func (r *MySQLOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.CustomerID, &order.DealerID,
			&order.Status, &order.PaymentStatus, &order.DealerConfirmed,
			&order.CustomerConfirmed, &order.TotalCents, &order.AdvancePaidCents,
			&order.DueAmountCents, &order.IsAdvancePaid, &order.IsDuePaid,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
