package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

type SeatRepository interface {
	ListBooked(ctx context.Context) ([]domain.SeatPrice, error)
	ListAvailable(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error)
	Swap(ctx context.Context, bookingID, fromSeatID, toSeatID int64) error
}

type PGSeatRepository struct {
	db database.Transactor
}

func NewSeatRepository(db database.Transactor) SeatRepository {
	return &PGSeatRepository{db: db}
}

// ListBooked returns every reserved show seat across all bookings.
func (r *PGSeatRepository) ListBooked(ctx context.Context) ([]domain.SeatPrice, error) {
	res, err := r.db.Query(ctx, `SELECT A.ssid, A.price FROM ShowSeats A, Bookings B WHERE A.bid = B.bid ORDER BY A.ssid`)
	if err != nil {
		return nil, err
	}
	return seatPrices(res), nil
}

// ListAvailable returns the unreserved show seats of the booking's show.
func (r *PGSeatRepository) ListAvailable(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error) {
	res, err := r.db.Query(ctx, `SELECT A.ssid, A.price FROM Bookings B, Shows S, ShowSeats A
		WHERE B.bid = $1 AND B.sid = S.sid AND A.sid = S.sid AND A.bid IS NULL ORDER BY A.ssid`, bookingID)
	if err != nil {
		return nil, err
	}
	return seatPrices(res), nil
}

// Swap releases fromSeatID and binds toSeatID to the booking in one
// transaction. fromSeatID must be held by the booking and toSeatID must
// still be unreserved.
func (r *PGSeatRepository) Swap(ctx context.Context, bookingID, fromSeatID, toSeatID int64) error {
	return r.db.WithTx(ctx, func(tx database.Executor) error {
		n, err := tx.Exec(ctx, `UPDATE ShowSeats SET bid = NULL WHERE ssid = $1 AND bid = $2`, fromSeatID, bookingID)
		if err != nil {
			return fmt.Errorf("release seat %d: %w", fromSeatID, err)
		}
		if n == 0 {
			return fmt.Errorf("release seat %d: %w", fromSeatID, ErrSeatNotHeld)
		}
		n, err = tx.Exec(ctx, `UPDATE ShowSeats SET bid = $1 WHERE ssid = $2 AND bid IS NULL`, bookingID, toSeatID)
		if err != nil {
			return fmt.Errorf("assign seat %d: %w", toSeatID, err)
		}
		if n == 0 {
			return fmt.Errorf("assign seat %d: %w", toSeatID, ErrSeatUnavailable)
		}
		return nil
	})
}

func seatPrices(res *database.Result) []domain.SeatPrice {
	seats := make([]domain.SeatPrice, 0, res.Len())
	for _, row := range res.Rows {
		seats = append(seats, domain.SeatPrice{ShowSeatID: row[0], Price: row[1]})
	}
	return seats
}

var _ SeatRepository = (*PGSeatRepository)(nil)
