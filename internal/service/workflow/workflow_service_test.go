package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/events"
	"github.com/Domenick1991/ticketmaster/internal/password"
	"github.com/Domenick1991/ticketmaster/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWorkflowService_AddUser_HashesPassword(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "a@b.com" && u.PasswordDigest == password.Digest("secret") && u.Phone == 5551234
	})).Return(nil).Once()

	user, err := service.AddUser(ctx, AddUserInput{FirstName: "Ada", LastName: "Lovelace", Email: "a@b.com", Phone: 5551234, Password: "secret"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordDigest)
	assert.Len(t, user.PasswordDigest, password.DigestWidth)
	m.users.AssertExpectations(t)
}

func TestWorkflowService_AddUser_StatementError(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.users.On("Create", ctx, mock.Anything).Return(errors.New("duplicate key value")).Once()

	user, err := service.AddUser(ctx, AddUserInput{Email: "a@b.com"})
	assert.Nil(t, user)
	assert.EqualError(t, err, "duplicate key value")
}

func TestWorkflowService_AddBooking_PublishesEvent(t *testing.T) {
	service, m := newTestService()
	WithEvents(m.producer, "bookings")(service)
	ctx := context.Background()

	booking := &domain.Booking{ID: 100, Status: domain.BookingStatusPending, ShowID: 1, UserEmail: "a@b.com", Seats: 1}
	m.bookings.On("Create", ctx, booking).Return(nil).Once()
	m.producer.On("Publish", ctx, "bookings", "booking-100", mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Type == events.TypeBookingCreated && e.ShowID == 1 && e.Status == "Pending"
	})).Return(nil).Once()

	require.NoError(t, service.AddBooking(ctx, booking))
	m.bookings.AssertExpectations(t)
	m.producer.AssertExpectations(t)
}

func TestWorkflowService_PublishFailureDoesNotFailWorkflow(t *testing.T) {
	service, m := newTestService()
	WithEvents(m.producer, "bookings")(service)
	ctx := context.Background()

	m.bookings.On("Cancel", ctx, int64(100)).Return(int64(1), nil).Once()
	m.producer.On("Publish", ctx, "bookings", "booking-100", mock.Anything).Return(errors.New("kafka down")).Once()

	n, err := service.RemovePayment(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWorkflowService_NoProducer(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.bookings.On("CancelPending", ctx).Return(int64(3), nil).Once()

	n, err := service.CancelPendingBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_AddBooking_Error(t *testing.T) {
	service, m := newTestService()
	WithEvents(m.producer, "bookings")(service)
	ctx := context.Background()

	m.bookings.On("Create", ctx, mock.Anything).Return(errors.New("fk violation")).Once()

	err := service.AddBooking(ctx, &domain.Booking{ID: 1})
	assert.Error(t, err)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_ChangeSeat(t *testing.T) {
	ctx := context.Background()
	booked := []domain.SeatPrice{{ShowSeatID: "1", Price: "10"}, {ShowSeatID: "5", Price: "15"}}
	available := []domain.SeatPrice{{ShowSeatID: "2", Price: "10"}, {ShowSeatID: "3", Price: "12"}}

	testCases := []struct {
		name     string
		from, to int64
		swap     bool
	}{
		{name: "equal prices", from: 1, to: 2, swap: true},
		{name: "different prices", from: 1, to: 3, swap: false},
		{name: "unknown current seat", from: 9, to: 2, swap: false},
		{name: "unknown new seat", from: 1, to: 9, swap: false},
		{name: "both unknown", from: 8, to: 9, swap: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, m := newTestService()
			if tc.swap {
				m.seats.On("Swap", ctx, int64(100), tc.from, tc.to).Return(nil).Once()
			}

			err := service.ChangeSeat(ctx, ChangeSeatInput{
				BookingID:  100,
				FromSeatID: tc.from,
				ToSeatID:   tc.to,
				Booked:     booked,
				Available:  available,
			})

			if tc.swap {
				require.NoError(t, err)
				m.seats.AssertExpectations(t)
				return
			}
			assert.ErrorIs(t, err, ErrPriceMismatch)
			m.seats.AssertNotCalled(t, "Swap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestWorkflowService_ChangeSeat_SeatTaken(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	m.seats.On("Swap", ctx, int64(100), int64(1), int64(2)).Return(repository.ErrSeatUnavailable).Once()

	err := service.ChangeSeat(ctx, ChangeSeatInput{
		BookingID:  100,
		FromSeatID: 1,
		ToSeatID:   2,
		Booked:     []domain.SeatPrice{{ShowSeatID: "1", Price: "10"}},
		Available:  []domain.SeatPrice{{ShowSeatID: "2", Price: "10"}},
	})
	assert.ErrorIs(t, err, repository.ErrSeatUnavailable)
}

func TestWorkflowService_ChangeSeat_SeatOfAnotherBooking(t *testing.T) {
	service, m := newTestService()
	WithEvents(m.producer, "bookings")(service)
	ctx := context.Background()

	// seat 1 is listed as booked but belongs to booking 200
	m.seats.On("Swap", ctx, int64(100), int64(1), int64(2)).
		Return(fmt.Errorf("release seat 1: %w", repository.ErrSeatNotHeld)).Once()

	err := service.ChangeSeat(ctx, ChangeSeatInput{
		BookingID:  100,
		FromSeatID: 1,
		ToSeatID:   2,
		Booked:     []domain.SeatPrice{{ShowSeatID: "1", Price: "10"}},
		Available:  []domain.SeatPrice{{ShowSeatID: "2", Price: "10"}},
	})
	assert.ErrorIs(t, err, repository.ErrSeatNotHeld)
	m.seats.AssertExpectations(t)
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_ShowsAtCinema(t *testing.T) {
	ctx := context.Background()

	t.Run("lists shows", func(t *testing.T) {
		service, m := newTestService()
		shows := []domain.ShowDate{{ShowID: "1", Date: "2024-01-01"}}
		m.shows.On("ListAtCinema", ctx, int64(5)).Return(shows, nil).Once()

		got, err := service.ShowsAtCinema(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, shows, got)
	})

	t.Run("no shows", func(t *testing.T) {
		service, m := newTestService()
		m.shows.On("ListAtCinema", ctx, int64(5)).Return([]domain.ShowDate{}, nil).Once()

		got, err := service.ShowsAtCinema(ctx, 5)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrNoShows)
	})
}

func TestWorkflowService_RemoveShowsOnDate(t *testing.T) {
	ctx := context.Background()

	t.Run("failing show is skipped", func(t *testing.T) {
		service, m := newTestService()
		m.shows.On("IDsAtCinemaOn", ctx, int64(5), "2024-01-01").Return([]int64{1, 2, 3}, nil).Once()
		m.shows.On("RemoveCascade", ctx, int64(1)).Return(domain.CascadeResult{ShowID: 1, ShowsDeleted: 1}, nil).Once()
		m.shows.On("RemoveCascade", ctx, int64(2)).Return(domain.CascadeResult{ShowID: 2}, errors.New("deadlock detected")).Once()
		m.shows.On("RemoveCascade", ctx, int64(3)).Return(domain.CascadeResult{ShowID: 3, ShowsDeleted: 1}, nil).Once()

		report, err := service.RemoveShowsOnDate(ctx, 5, "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, report.Failed)
		require.Len(t, report.Removed, 2)
		assert.Equal(t, int64(1), report.Removed[0].ShowID)
		assert.Equal(t, int64(3), report.Removed[1].ShowID)
		m.shows.AssertExpectations(t)
	})

	t.Run("nothing on date", func(t *testing.T) {
		service, m := newTestService()
		m.shows.On("IDsAtCinemaOn", ctx, int64(5), "2024-01-02").Return([]int64{}, nil).Once()

		report, err := service.RemoveShowsOnDate(ctx, 5, "2024-01-02")
		require.NoError(t, err)
		assert.Empty(t, report.Removed)
		assert.Empty(t, report.Failed)
		m.shows.AssertNotCalled(t, "RemoveCascade", mock.Anything, mock.Anything)
	})

	t.Run("listing fails", func(t *testing.T) {
		service, m := newTestService()
		m.shows.On("IDsAtCinemaOn", ctx, int64(5), "2024-01-01").Return([]int64(nil), errors.New("conn reset")).Once()

		report, err := service.RemoveShowsOnDate(ctx, 5, "2024-01-01")
		assert.Nil(t, report)
		assert.Error(t, err)
	})

	t.Run("publishes per removed show", func(t *testing.T) {
		service, m := newTestService()
		WithEvents(m.producer, "bookings")(service)
		m.shows.On("IDsAtCinemaOn", ctx, int64(5), "2024-01-01").Return([]int64{7}, nil).Once()
		m.shows.On("RemoveCascade", ctx, int64(7)).Return(domain.CascadeResult{ShowID: 7, BookingsDeleted: 2, ShowsDeleted: 1}, nil).Once()
		m.producer.On("Publish", ctx, "bookings", "show-7", mock.MatchedBy(func(e events.BookingEvent) bool {
			return e.Type == events.TypeShowRemoved && e.Count == 2
		})).Return(nil).Once()

		_, err := service.RemoveShowsOnDate(ctx, 5, "2024-01-01")
		require.NoError(t, err)
		m.producer.AssertExpectations(t)
	})
}

func TestDateListed(t *testing.T) {
	shows := []domain.ShowDate{{ShowID: "1", Date: "2024-01-01"}, {ShowID: "2", Date: "2024-01-03"}}
	assert.True(t, DateListed(shows, "2024-01-03"))
	assert.False(t, DateListed(shows, "2024-01-02"))
	assert.False(t, DateListed(nil, "2024-01-01"))
}

func TestWorkflowService_ClearCancelledBookings_Empty(t *testing.T) {
	service, m := newTestService()
	WithEvents(m.producer, "bookings")(service)
	ctx := context.Background()

	m.bookings.On("ClearCancelled", ctx).Return(domain.ClearResult{}, nil).Once()

	res, err := service.ClearCancelledBookings(ctx)
	require.NoError(t, err)
	assert.True(t, res.Empty())
	m.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_Delegates(t *testing.T) {
	service, m := newTestService()
	ctx := context.Background()

	movie := &domain.Movie{ID: 1}
	show := &domain.Show{ID: 1, MovieID: 1}
	m.catalog.On("AddMovieShowing", ctx, movie, show, int64(3)).Return(nil).Once()
	m.catalog.On("Exists", ctx, domain.EntityShow, int64(1)).Return(true, nil).Once()
	m.seats.On("ListBooked", ctx).Return([]domain.SeatPrice{{ShowSeatID: "1", Price: "10"}}, nil).Once()
	m.seats.On("ListAvailable", ctx, int64(100)).Return([]domain.SeatPrice{}, nil).Once()

	require.NoError(t, service.AddMovieShowing(ctx, movie, show, 3))

	ok, err := service.Exists(ctx, domain.EntityShow, int64(1))
	require.NoError(t, err)
	assert.True(t, ok)

	booked, err := service.ListBookedSeats(ctx)
	require.NoError(t, err)
	assert.Len(t, booked, 1)

	available, err := service.ListAvailableSeats(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, available)

	m.catalog.AssertExpectations(t)
	m.seats.AssertExpectations(t)
}
