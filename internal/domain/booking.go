package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID        int64
	Status    BookingStatus
	DateTime  string
	Seats     int
	ShowID    int64
	UserEmail string
}

type User struct {
	Email          string
	LastName       string
	FirstName      string
	Phone          int64
	PasswordDigest string
}
