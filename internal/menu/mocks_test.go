package menu

import (
	"context"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/service/reports"
	"github.com/Domenick1991/ticketmaster/internal/service/workflow"
	"github.com/stretchr/testify/mock"
)

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) AddUser(ctx context.Context, input workflow.AddUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockWorkflowService) Exists(ctx context.Context, entity domain.Entity, key any) (bool, error) {
	args := m.Called(ctx, entity, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkflowService) AddBooking(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockWorkflowService) AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error {
	return m.Called(ctx, movie, show, theaterID).Error(0)
}

func (m *MockWorkflowService) CancelPendingBookings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkflowService) ListBookedSeats(ctx context.Context) ([]domain.SeatPrice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SeatPrice), args.Error(1)
}

func (m *MockWorkflowService) ListAvailableSeats(ctx context.Context, bookingID int64) ([]domain.SeatPrice, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.SeatPrice), args.Error(1)
}

func (m *MockWorkflowService) ChangeSeat(ctx context.Context, input workflow.ChangeSeatInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockWorkflowService) RemovePayment(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkflowService) ClearCancelledBookings(ctx context.Context) (domain.ClearResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ClearResult), args.Error(1)
}

func (m *MockWorkflowService) ShowsAtCinema(ctx context.Context, cinemaID int64) ([]domain.ShowDate, error) {
	args := m.Called(ctx, cinemaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowDate), args.Error(1)
}

func (m *MockWorkflowService) RemoveShowsOnDate(ctx context.Context, cinemaID int64, date string) (*workflow.RemovalReport, error) {
	args := m.Called(ctx, cinemaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.RemovalReport), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) result(args mock.Arguments) (*database.Result, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Result), args.Error(1)
}

func (m *MockReportService) TheatersPlayingShow(ctx context.Context, cinemaID, showID int64) (*database.Result, error) {
	return m.result(m.Called(ctx, cinemaID, showID))
}

func (m *MockReportService) ShowsStartingAt(ctx context.Context, startTime, date string) (*database.Result, error) {
	return m.result(m.Called(ctx, startTime, date))
}

func (m *MockReportService) MovieTitles(ctx context.Context, titleContains, releasedAfter string) (*database.Result, error) {
	return m.result(m.Called(ctx, titleContains, releasedAfter))
}

func (m *MockReportService) UsersWithPendingBooking(ctx context.Context) (*database.Result, error) {
	return m.result(m.Called(ctx))
}

func (m *MockReportService) Cinemas(ctx context.Context) ([]domain.Cinema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cinema), args.Error(1)
}

func (m *MockReportService) MovieShowsAtCinema(ctx context.Context, input reports.DateRangeInput) (*database.Result, error) {
	return m.result(m.Called(ctx, input))
}

func (m *MockReportService) BookingsForUser(ctx context.Context, email string) (*database.Result, error) {
	return m.result(m.Called(ctx, email))
}

var (
	_ workflow.WorkflowUseCase = (*MockWorkflowService)(nil)
	_ reports.ReportUseCase    = (*MockReportService)(nil)
)
