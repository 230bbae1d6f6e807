package repository

import (
	"context"
	"strings"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

// ReportRepository runs the read-only listings. Each method is one query
// and hands back the raw text result for printing.
type ReportRepository interface {
	TheatersPlayingShow(ctx context.Context, cinemaID, showID int64) (*database.Result, error)
	ShowsStartingAt(ctx context.Context, startTime, date string) (*database.Result, error)
	MovieTitles(ctx context.Context, titleContains, releasedAfter string) (*database.Result, error)
	UsersWithPendingBooking(ctx context.Context) (*database.Result, error)
	MovieShowsAtCinema(ctx context.Context, cinemaID int64, from, to, title string) (*database.Result, error)
	BookingsForUser(ctx context.Context, email string) (*database.Result, error)
}

type PGReportRepository struct {
	db database.Executor
}

func NewReportRepository(db database.Executor) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) TheatersPlayingShow(ctx context.Context, cinemaID, showID int64) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT C.tid, C.tname, C.cid FROM Shows A, Plays B, Theaters C
		WHERE C.tid = B.tid AND B.sid = A.sid AND A.sid = $1 AND C.cid = $2`, showID, cinemaID)
}

func (r *PGReportRepository) ShowsStartingAt(ctx context.Context, startTime, date string) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT * FROM Shows A WHERE A.sttime = $1 AND A.sdate = $2`, startTime, date)
}

func (r *PGReportRepository) MovieTitles(ctx context.Context, titleContains, releasedAfter string) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT title FROM Movies WHERE title ILIKE $1 AND rdate > $2`,
		containsPattern(titleContains), releasedAfter)
}

func (r *PGReportRepository) UsersWithPendingBooking(ctx context.Context) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT A.fname, A.lname, A.email FROM Users A, Bookings B
		WHERE B.status = $1 AND B.email = A.email`, string(domain.BookingStatusPending))
}

func (r *PGReportRepository) MovieShowsAtCinema(ctx context.Context, cinemaID int64, from, to, title string) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT A.title, A.duration, B.sdate, B.sttime, B.edtime FROM Movies A, Shows B, Theaters T, Plays P
		WHERE T.cid = $1 AND T.tid = P.tid AND P.sid = B.sid AND B.sdate >= $2 AND B.sdate <= $3
		AND B.mvid = A.mvid AND A.title = $4`, cinemaID, from, to, title)
}

// BookingsForUser lists, per reserved seat, the movie, show slot, theater
// and seat number of every booking the user holds.
func (r *PGReportRepository) BookingsForUser(ctx context.Context, email string) (*database.Result, error) {
	return r.db.Query(ctx, `SELECT A.title, B.sdate, B.sttime, C.tname, S.sno
		FROM Users U, Bookings T, Shows B, Movies A, ShowSeats SS, CinemaSeats S, Theaters C
		WHERE U.email = $1 AND U.email = T.email AND T.sid = B.sid AND A.mvid = B.mvid
		AND SS.bid = T.bid AND SS.csid = S.csid AND S.tid = C.tid`, email)
}

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

var _ ReportRepository = (*PGReportRepository)(nil)
