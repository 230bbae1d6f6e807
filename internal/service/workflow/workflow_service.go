// Package workflow holds the multi-statement procedures that keep Users,
// Bookings, Payments, ShowSeats, Plays and Shows consistent with each other.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/events"
	"github.com/Domenick1991/ticketmaster/internal/password"
	"github.com/Domenick1991/ticketmaster/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrPriceMismatch = errors.New("prices don't match")
	ErrNoShows       = errors.New("cinema currently has no shows")
	ErrAborted       = errors.New("aborted by operator")
)

type WorkflowUseCase interface {
	AddUser(ctx context.Context, input AddUserInput) (*domain.User, error)
	Exists(ctx context.Context, entity domain.Entity, key any) (bool, error)
	AddBooking(ctx context.Context, booking *domain.Booking) error
	AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error
	CancelPendingBookings(ctx context.Context) (int64, error)
	ListBookedSeats(ctx context.Context) ([]domain.SeatPrice, error)
	ListAvailableSeats(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error)
	ChangeSeat(ctx context.Context, input ChangeSeatInput) error
	RemovePayment(ctx context.Context, bookingID int64) (int64, error)
	ClearCancelledBookings(ctx context.Context) (domain.ClearResult, error)
	ShowsAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error)
	RemoveShowsOnDate(ctx context.Context, cinemaID int64, date string) (*RemovalReport, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AddUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     int64
	Password  string
}

// ChangeSeatInput carries the two seat listings the operator was shown;
// prices are looked up in them rather than re-read.
type ChangeSeatInput struct {
	BookingID  int64
	FromSeatID int64
	ToSeatID   int64
	Booked     []domain.SeatPrice
	Available  []domain.SeatPrice
}

// RemovalReport lists the shows removed on a date and the ones whose
// cascade failed and was rolled back.
type RemovalReport struct {
	Removed []domain.CascadeResult
	Failed  []int64
}

type WorkflowService struct {
	users    repository.UserRepository
	catalog  repository.CatalogRepository
	bookings repository.BookingRepository
	seats    repository.SeatRepository
	shows    repository.ShowRepository
	producer Producer
	topic    string
	log      *zap.Logger
}

type WorkflowServiceOption func(*WorkflowService)

// WithEvents enables lifecycle events on topic.
func WithEvents(producer Producer, topic string) WorkflowServiceOption {
	return func(s *WorkflowService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewWorkflowService(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	bookings repository.BookingRepository,
	seats repository.SeatRepository,
	shows repository.ShowRepository,
	log *zap.Logger,
	opts ...WorkflowServiceOption,
) *WorkflowService {
	s := &WorkflowService{
		users:    users,
		catalog:  catalog,
		bookings: bookings,
		seats:    seats,
		shows:    shows,
		log:      log,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WorkflowService) AddUser(ctx context.Context, input AddUserInput) (*domain.User, error) {
	user := &domain.User{
		Email:          input.Email,
		LastName:       input.LastName,
		FirstName:      input.FirstName,
		Phone:          input.Phone,
		PasswordDigest: password.Digest(input.Password),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *WorkflowService) Exists(ctx context.Context, entity domain.Entity, key any) (bool, error) {
	return s.catalog.Exists(ctx, entity, key)
}

func (s *WorkflowService) AddBooking(ctx context.Context, booking *domain.Booking) error {
	if err := s.bookings.Create(ctx, booking); err != nil {
		return err
	}

	event := events.NewBookingEvent(events.TypeBookingCreated)
	event.BookingID = booking.ID
	event.ShowID = booking.ShowID
	event.Email = booking.UserEmail
	event.Status = string(booking.Status)
	s.publish(ctx, event)
	return nil
}

func (s *WorkflowService) AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error {
	return s.catalog.AddMovieShowing(ctx, movie, show, theaterID)
}

// CancelPendingBookings marks every pending booking cancelled. Running it
// again changes nothing.
func (s *WorkflowService) CancelPendingBookings(ctx context.Context) (int64, error) {
	n, err := s.bookings.CancelPending(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		event := events.NewBookingEvent(events.TypePendingBookingsCancelled)
		event.Status = string(domain.BookingStatusCancelled)
		event.Count = n
		s.publish(ctx, event)
	}
	return n, nil
}

func (s *WorkflowService) ListBookedSeats(ctx context.Context) ([]domain.SeatPrice, error) {
	return s.seats.ListBooked(ctx)
}

func (s *WorkflowService) ListAvailableSeats(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error) {
	return s.seats.ListAvailable(ctx, bookingID)
}

// ChangeSeat moves a booking from one show seat to another of exactly the
// same price. A seat missing from its listing has no price and never
// matches, so nothing is changed.
func (s *WorkflowService) ChangeSeat(ctx context.Context, input ChangeSeatInput) error {
	from := priceOf(input.Booked, input.FromSeatID)
	to := priceOf(input.Available, input.ToSeatID)
	if from == "" || to == "" || from != to {
		return fmt.Errorf("%w: seat %d at %q, seat %d at %q", ErrPriceMismatch, input.FromSeatID, from, input.ToSeatID, to)
	}

	if err := s.seats.Swap(ctx, input.BookingID, input.FromSeatID, input.ToSeatID); err != nil {
		return err
	}

	event := events.NewBookingEvent(events.TypeSeatChanged)
	event.BookingID = input.BookingID
	event.FromSeatID = input.FromSeatID
	event.ToSeatID = input.ToSeatID
	s.publish(ctx, event)
	return nil
}

// RemovePayment cancels the booking. Its payments stay until cancelled
// bookings are cleared.
func (s *WorkflowService) RemovePayment(ctx context.Context, bookingID int64) (int64, error) {
	n, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		event := events.NewBookingEvent(events.TypeBookingCancelled)
		event.BookingID = bookingID
		event.Status = string(domain.BookingStatusCancelled)
		s.publish(ctx, event)
	}
	return n, nil
}

func (s *WorkflowService) ClearCancelledBookings(ctx context.Context) (domain.ClearResult, error) {
	res, err := s.bookings.ClearCancelled(ctx)
	if err != nil {
		return domain.ClearResult{}, err
	}
	if !res.Empty() {
		event := events.NewBookingEvent(events.TypeCancelledBookingsCleared)
		event.Count = res.BookingsDeleted
		s.publish(ctx, event)
	}
	return res, nil
}

func (s *WorkflowService) ShowsAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error) {
	shows, err := s.shows.ListAtCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, ErrNoShows
	}
	return shows, nil
}

// RemoveShowsOnDate removes every show playing at the cinema on date. Each
// show is removed in its own transaction; a failing show is logged and
// skipped.
func (s *WorkflowService) RemoveShowsOnDate(ctx context.Context, cinemaID int64, date string) (*RemovalReport, error) {
	ids, err := s.shows.IDsAtCinemaOn(ctx, cinemaID, date)
	if err != nil {
		return nil, err
	}
	s.log.Info("removing shows", zap.Int64("cinema_id", cinemaID), zap.String("date", date), zap.Int("shows", len(ids)))

	report := &RemovalReport{}
	for _, sid := range ids {
		res, err := s.shows.RemoveCascade(ctx, sid)
		if err != nil {
			s.log.Error("show removal rolled back", zap.Int64("show_id", sid), zap.Error(err))
			report.Failed = append(report.Failed, sid)
			continue
		}
		s.log.Info("show removed",
			zap.Int64("show_id", sid),
			zap.Int64("bookings_cancelled", res.BookingsCancelled),
			zap.Int64("payments_deleted", res.PaymentsDeleted),
			zap.Int64("bookings_deleted", res.BookingsDeleted),
			zap.Int64("show_seats_deleted", res.ShowSeatsDeleted),
			zap.Int64("plays_deleted", res.PlaysDeleted),
		)
		report.Removed = append(report.Removed, res)

		event := events.NewBookingEvent(events.TypeShowRemoved)
		event.ShowID = sid
		event.Count = res.BookingsDeleted
		s.publish(ctx, event)
	}
	return report, nil
}

// DateListed reports whether any of shows is on date.
func DateListed(shows []domain.ShowDate, date string) bool {
	for _, sh := range shows {
		if sh.Date == date {
			return true
		}
	}
	return false
}

func priceOf(seats []domain.SeatPrice, showSeatID int64) string {
	id := strconv.FormatInt(showSeatID, 10)
	for _, seat := range seats {
		if seat.ShowSeatID == id {
			return seat.Price
		}
	}
	return ""
}

func (s *WorkflowService) publish(ctx context.Context, event events.BookingEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, event.Key(), event); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}
}

var _ WorkflowUseCase = (*WorkflowService)(nil)
