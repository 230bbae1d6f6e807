package domain

// Dates and times travel as the text the operator typed; the database does
// the type conversion.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate string
	Country     string
	Description string
	Duration    int
	Language    string
	Genre       string
}

type Show struct {
	ID        int64
	MovieID   int64
	Date      string
	StartTime string
	EndTime   string
}

type Cinema struct {
	ID   int64
	Name string
}

// SeatPrice is one (ssid, price) pair as listed to the operator.
type SeatPrice struct {
	ShowSeatID string
	Price      string
}

// ShowDate is one show playing at a cinema.
type ShowDate struct {
	ShowID string
	Date   string
}

// Entity names a table that can be gated by an existence check.
type Entity string

const (
	EntityUser       Entity = "user"
	EntityShow       Entity = "show"
	EntityMovie      Entity = "movie"
	EntityCinemaSeat Entity = "cinema seat"
	EntityShowSeat   Entity = "show seat"
	EntityTheater    Entity = "theater"
	EntityCinema     Entity = "cinema"
)
