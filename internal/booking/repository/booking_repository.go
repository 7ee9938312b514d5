package repository

import (
	"context"
	"database/sql"
	"fmt"

	"buildmart/internal/domain"
	"buildmart/internal/errors"
)

type MySQLBookingRepository struct {
	db *sql.DB
}

func NewMySQLBookingRepository(db *sql.DB) *MySQLBookingRepository {
	return &MySQLBookingRepository{db: db}
}

const bookingColumns = `id, bookingNumber, customerId, merchantId, equipmentName, dailyRateCents,
	       days, totalCostCents, securityDepositCents, status, startDate, createdAt, updatedAt`

func (r *MySQLBookingRepository) Insert(ctx context.Context, booking domain.Booking) (uint, error) {
	query := `
		INSERT INTO Bookings (bookingNumber, customerId, merchantId, equipmentName,
		                      dailyRateCents, days, totalCostCents, securityDepositCents,
		                      status, startDate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.BookingNumber, booking.CustomerID, booking.MerchantID,
		booking.EquipmentName, booking.DailyRateCents, booking.Days,
		booking.TotalCostCents, booking.SecurityDepositCents, booking.Status,
		booking.StartDate,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted booking id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM Bookings WHERE id = ?`

	var b domain.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.BookingNumber, &b.CustomerID, &b.MerchantID, &b.EquipmentName,
		&b.DailyRateCents, &b.Days, &b.TotalCostCents, &b.SecurityDepositCents,
		&b.Status, &b.StartDate, &b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking by id: %w", err)
	}

	return &b, nil
}

// UpdateStatus is conditional on the expected current status so racing
// approvals cannot double-apply.
func (r *MySQLBookingRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.BookingStatus) (bool, error) {
	query := `UPDATE Bookings SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("updating booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *MySQLBookingRepository) FindByCustomer(ctx context.Context, customerID uint) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM Bookings WHERE customerId = ? ORDER BY createdAt DESC`
	return r.queryBookings(ctx, query, customerID)
}

func (r *MySQLBookingRepository) FindByMerchant(ctx context.Context, merchantID uint) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM Bookings WHERE merchantId = ? ORDER BY createdAt DESC`
	return r.queryBookings(ctx, query, merchantID)
}

func (r *MySQLBookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		err := rows.Scan(
			&b.ID, &b.BookingNumber, &b.CustomerID, &b.MerchantID, &b.EquipmentName,
			&b.DailyRateCents, &b.Days, &b.TotalCostCents, &b.SecurityDepositCents,
			&b.Status, &b.StartDate, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating booking rows: %w", err)
	}

	return bookings, nil
}
