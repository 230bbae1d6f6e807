package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	CancelPending(ctx context.Context) (int64, error)
	Cancel(ctx context.Context, bookingID int64) (int64, error)
	ClearCancelled(ctx context.Context) (domain.ClearResult, error)
}

type PGBookingRepository struct {
	db database.Transactor
}

func NewBookingRepository(db database.Transactor) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO Bookings VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.ID, string(booking.Status), booking.DateTime, booking.Seats, booking.ShowID, booking.UserEmail)
	return err
}

func (r *PGBookingRepository) CancelPending(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx, `UPDATE Bookings SET status = $1 WHERE status = $2`,
		string(domain.BookingStatusCancelled), string(domain.BookingStatusPending))
}

func (r *PGBookingRepository) Cancel(ctx context.Context, bookingID int64) (int64, error) {
	return r.db.Exec(ctx, `UPDATE Bookings SET status = $1 WHERE bid = $2`,
		string(domain.BookingStatusCancelled), bookingID)
}

// ClearCancelled removes every cancelled booking together with its payments
// and show seats, dependents first, in one transaction.
func (r *PGBookingRepository) ClearCancelled(ctx context.Context) (domain.ClearResult, error) {
	var res domain.ClearResult
	cancelled := string(domain.BookingStatusCancelled)

	err := r.db.WithTx(ctx, func(tx database.Executor) error {
		var err error
		if res.PaymentsDeleted, err = tx.Exec(ctx, `DELETE FROM Payments WHERE bid IN (SELECT bid FROM Bookings WHERE status = $1)`, cancelled); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if res.ShowSeatsDeleted, err = tx.Exec(ctx, `DELETE FROM ShowSeats WHERE bid IN (SELECT bid FROM Bookings WHERE status = $1)`, cancelled); err != nil {
			return fmt.Errorf("delete show seats: %w", err)
		}
		if res.BookingsDeleted, err = tx.Exec(ctx, `DELETE FROM Bookings WHERE status = $1`, cancelled); err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.ClearResult{}, err
	}
	return res, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
