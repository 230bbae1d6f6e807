package domain

// CascadeResult counts the rows touched by each stage of removing one show.
type CascadeResult struct {
	ShowID            int64
	BookingsCancelled int64
	PaymentsDeleted   int64
	SeatsReleased     int64
	BookingsDeleted   int64
	ShowSeatsDeleted  int64
	PlaysDeleted      int64
	ShowsDeleted      int64
}

// ClearResult counts the rows removed by clearing cancelled bookings.
type ClearResult struct {
	PaymentsDeleted  int64
	ShowSeatsDeleted int64
	BookingsDeleted  int64
}

func (r ClearResult) Empty() bool {
	return r.PaymentsDeleted == 0 && r.ShowSeatsDeleted == 0 && r.BookingsDeleted == 0
}
