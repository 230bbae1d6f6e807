// Package reports runs the read-only listings offered by the menu.
package reports

import (
	"context"
	"errors"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/repository"
)

const (
	DefaultTitleFilter   = "love"
	DefaultReleasedAfter = "2010-12-31"

	// CinemaListLimit caps the cinemas printed before the date-range report.
	// Any existing cinema id is still accepted.
	CinemaListLimit = 10
)

var (
	ErrEndBeforeStart = errors.New("end date is earlier than the start date")
	ErrNoCinemas      = errors.New("no cinemas")
)

type ReportUseCase interface {
	TheatersPlayingShow(ctx context.Context, cinemaID, showID int64) (*database.Result, error)
	ShowsStartingAt(ctx context.Context, startTime, date string) (*database.Result, error)
	MovieTitles(ctx context.Context, titleContains, releasedAfter string) (*database.Result, error)
	UsersWithPendingBooking(ctx context.Context) (*database.Result, error)
	Cinemas(ctx context.Context) ([]domain.Cinema, error)
	MovieShowsAtCinema(ctx context.Context, input DateRangeInput) (*database.Result, error)
	BookingsForUser(ctx context.Context, email string) (*database.Result, error)
}

// DateRangeInput selects the shows of one movie title at a cinema between
// From and To inclusive. Dates are YYYY-MM-DD.
type DateRangeInput struct {
	CinemaID int64
	From     string
	To       string
	Title    string
}

type ReportService struct {
	reports repository.ReportRepository
	catalog repository.CatalogRepository
}

func NewReportService(reports repository.ReportRepository, catalog repository.CatalogRepository) *ReportService {
	return &ReportService{reports: reports, catalog: catalog}
}

func (s *ReportService) TheatersPlayingShow(ctx context.Context, cinemaID, showID int64) (*database.Result, error) {
	return s.reports.TheatersPlayingShow(ctx, cinemaID, showID)
}

func (s *ReportService) ShowsStartingAt(ctx context.Context, startTime, date string) (*database.Result, error) {
	return s.reports.ShowsStartingAt(ctx, startTime, date)
}

// MovieTitles lists titles containing titleContains, ignoring case, released
// after releasedAfter. Empty arguments fall back to the defaults.
func (s *ReportService) MovieTitles(ctx context.Context, titleContains, releasedAfter string) (*database.Result, error) {
	if titleContains == "" {
		titleContains = DefaultTitleFilter
	}
	if releasedAfter == "" {
		releasedAfter = DefaultReleasedAfter
	}
	return s.reports.MovieTitles(ctx, titleContains, releasedAfter)
}

func (s *ReportService) UsersWithPendingBooking(ctx context.Context) (*database.Result, error) {
	return s.reports.UsersWithPendingBooking(ctx)
}

// Cinemas returns every cinema, lowest id first, or ErrNoCinemas.
func (s *ReportService) Cinemas(ctx context.Context) ([]domain.Cinema, error) {
	cinemas, err := s.catalog.ListCinemas(ctx)
	if err != nil {
		return nil, err
	}
	if len(cinemas) == 0 {
		return nil, ErrNoCinemas
	}
	return cinemas, nil
}

func (s *ReportService) MovieShowsAtCinema(ctx context.Context, input DateRangeInput) (*database.Result, error) {
	if err := CheckRange(input.From, input.To); err != nil {
		return nil, err
	}
	return s.reports.MovieShowsAtCinema(ctx, input.CinemaID, input.From, input.To, input.Title)
}

func (s *ReportService) BookingsForUser(ctx context.Context, email string) (*database.Result, error) {
	return s.reports.BookingsForUser(ctx, email)
}

var _ ReportUseCase = (*ReportService)(nil)
