package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

type ShowRepository interface {
	ListAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error)
	IDsAtCinemaOn(ctx context.Context, cinemaID int64, date string) ([]int64, error)
	RemoveCascade(ctx context.Context, showID int64) (domain.CascadeResult, error)
}

type PGShowRepository struct {
	db database.Transactor
}

func NewShowRepository(db database.Transactor) ShowRepository {
	return &PGShowRepository{db: db}
}

func (r *PGShowRepository) ListAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error) {
	res, err := r.db.Query(ctx, `SELECT S.sid, S.sdate FROM Shows S, Cinemas C, Theaters T, Plays P
		WHERE C.cid = $1 AND T.cid = C.cid AND T.tid = P.tid AND P.sid = S.sid ORDER BY S.sdate, S.sid`, cinemaID)
	if err != nil {
		return nil, err
	}

	shows := make([]domain.ShowDate, 0, res.Len())
	for _, row := range res.Rows {
		shows = append(shows, domain.ShowDate{ShowID: row[0], Date: row[1]})
	}
	return shows, nil
}

func (r *PGShowRepository) IDsAtCinemaOn(ctx context.Context, cinemaID int64, date string) ([]int64, error) {
	res, err := r.db.Query(ctx, `SELECT DISTINCT S.sid FROM Shows S, Cinemas C, Theaters T, Plays P
		WHERE C.cid = $1 AND T.cid = C.cid AND T.tid = P.tid AND P.sid = S.sid AND S.sdate = $2 ORDER BY S.sid`, cinemaID, date)
	if err != nil {
		return nil, err
	}
	return parseIDs(res.Column(0))
}

// RemoveCascade deletes one show and everything that references it, in
// dependency order, inside a single transaction: bookings are cancelled,
// their payments deleted, their seats released, the bookings deleted, then
// the show seats, the Plays rows and finally the show itself.
func (r *PGShowRepository) RemoveCascade(ctx context.Context, showID int64) (domain.CascadeResult, error) {
	res := domain.CascadeResult{ShowID: showID}
	cancelled := string(domain.BookingStatusCancelled)

	err := r.db.WithTx(ctx, func(tx database.Executor) error {
		bookings, err := tx.Query(ctx, `SELECT B.bid FROM Bookings B WHERE B.sid = $1 ORDER BY B.bid`, showID)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		bookingIDs, err := parseIDs(bookings.Column(0))
		if err != nil {
			return err
		}

		if len(bookingIDs) > 0 {
			if res.BookingsCancelled, err = tx.Exec(ctx, `UPDATE Bookings SET status = $1 WHERE sid = $2`, cancelled, showID); err != nil {
				return fmt.Errorf("cancel bookings: %w", err)
			}
			for _, bid := range bookingIDs {
				n, err := tx.Exec(ctx, `DELETE FROM Payments WHERE bid = $1`, bid)
				if err != nil {
					return fmt.Errorf("delete payments of booking %d: %w", bid, err)
				}
				res.PaymentsDeleted += n
			}
			if res.SeatsReleased, err = tx.Exec(ctx, `UPDATE ShowSeats SET bid = NULL WHERE bid IN (SELECT bid FROM Bookings WHERE sid = $1)`, showID); err != nil {
				return fmt.Errorf("release seats: %w", err)
			}
			if res.BookingsDeleted, err = tx.Exec(ctx, `DELETE FROM Bookings WHERE status = $1 AND sid = $2`, cancelled, showID); err != nil {
				return fmt.Errorf("delete bookings: %w", err)
			}
		}

		if res.ShowSeatsDeleted, err = tx.Exec(ctx, `DELETE FROM ShowSeats WHERE sid = $1`, showID); err != nil {
			return fmt.Errorf("delete show seats: %w", err)
		}
		if res.PlaysDeleted, err = tx.Exec(ctx, `DELETE FROM Plays WHERE sid = $1`, showID); err != nil {
			return fmt.Errorf("delete plays: %w", err)
		}
		if res.ShowsDeleted, err = tx.Exec(ctx, `DELETE FROM Shows WHERE sid = $1`, showID); err != nil {
			return fmt.Errorf("delete show: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.CascadeResult{ShowID: showID}, err
	}
	return res, nil
}

func parseIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var _ ShowRepository = (*PGShowRepository)(nil)
