package workflow

import (
	"context"

	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Exists(ctx context.Context, entity domain.Entity, key any) (bool, error) {
	args := m.Called(ctx, entity, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error {
	args := m.Called(ctx, movie, show, theaterID)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCinemas(ctx context.Context) ([]domain.Cinema, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Cinema), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) CancelPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) ClearCancelled(ctx context.Context) (domain.ClearResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ClearResult), args.Error(1)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) ListBooked(ctx context.Context) ([]domain.SeatPrice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SeatPrice), args.Error(1)
}

func (m *MockSeatRepository) ListAvailable(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.SeatPrice), args.Error(1)
}

func (m *MockSeatRepository) Swap(ctx context.Context, bookingID, fromSeatID, toSeatID int64) error {
	args := m.Called(ctx, bookingID, fromSeatID, toSeatID)
	return args.Error(0)
}

type MockShowRepository struct {
	mock.Mock
}

func (m *MockShowRepository) ListAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error) {
	args := m.Called(ctx, cinemaID)
	return args.Get(0).([]domain.ShowDate), args.Error(1)
}

func (m *MockShowRepository) IDsAtCinemaOn(ctx context.Context, cinemaID int64, date string) ([]int64, error) {
	args := m.Called(ctx, cinemaID, date)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockShowRepository) RemoveCascade(ctx context.Context, showID int64) (domain.CascadeResult, error) {
	args := m.Called(ctx, showID)
	return args.Get(0).(domain.CascadeResult), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type mocks struct {
	users    *MockUserRepository
	catalog  *MockCatalogRepository
	bookings *MockBookingRepository
	seats    *MockSeatRepository
	shows    *MockShowRepository
	producer *MockProducer
}

func newTestService() (*WorkflowService, *mocks) {
	m := &mocks{
		users:    &MockUserRepository{},
		catalog:  &MockCatalogRepository{},
		bookings: &MockBookingRepository{},
		seats:    &MockSeatRepository{},
		shows:    &MockShowRepository{},
		producer: &MockProducer{},
	}
	s := NewWorkflowService(m.users, m.catalog, m.bookings, m.seats, m.shows, nil)
	return s, m
}
