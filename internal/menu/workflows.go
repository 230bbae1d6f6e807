package menu

import (
	"context"

	"github.com/Domenick1991/ticketmaster/internal/console"
	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/service/workflow"
)

func (d *Dispatcher) addUser(ctx context.Context) error {
	d.p.Println("Please enter the necessary information")
	d.p.Println()

	var input workflow.AddUserInput
	var err error
	if input.FirstName, err = d.p.ReadLine("\t\tEnter first name: "); err != nil {
		return err
	}
	if input.LastName, err = d.p.ReadLine("\t\tEnter last name: "); err != nil {
		return err
	}
	if input.Email, err = d.p.ReadLine("\t\tEnter email: "); err != nil {
		return err
	}
	if input.Phone, err = d.p.ReadInt("\t\tEnter phone number: "); err != nil {
		return err
	}
	if input.Password, err = d.p.ReadLine("\t\tEnter password: "); err != nil {
		return err
	}

	user, err := d.workflows.AddUser(ctx, input)
	if err != nil {
		return err
	}
	d.p.Printf("User %s added\n", user.Email)
	return nil
}

// addBooking gates every referenced id on an existence check. A failed
// check is reported and the id asked for again. Only the email and show id
// end up on the booking row.
func (d *Dispatcher) addBooking(ctx context.Context) error {
	d.p.Println("Please input the necessary information: ")

	email, err := d.readExistingEmail(ctx)
	if err != nil {
		return err
	}
	showID, err := d.readExistingID(ctx, "\tEnter an existing show id to add a booking: ", domain.EntityShow, "Your show id does not exist")
	if err != nil {
		return err
	}
	gates := []struct {
		prompt string
		entity domain.Entity
	}{
		{"\tEnter an existing movie id to add a booking: ", domain.EntityMovie},
		{"\tEnter an existing Cinema seat to add a booking: ", domain.EntityCinemaSeat},
		{"\tEnter an existing Show seat to add a booking: ", domain.EntityShowSeat},
		{"\tEnter an existing Theater to add a booking: ", domain.EntityTheater},
		{"\tEnter an existing Cinema to add a booking: ", domain.EntityCinema},
	}
	for _, g := range gates {
		if _, err := d.readExistingID(ctx, g.prompt, g.entity, console.InvalidInput); err != nil {
			return err
		}
	}

	booking := &domain.Booking{ShowID: showID, UserEmail: email}
	if booking.ID, err = d.p.ReadInt("\t\tEnter booking id: "); err != nil {
		return err
	}
	status, err := d.p.ReadLine("\t\tEnter status: ")
	if err != nil {
		return err
	}
	booking.Status = domain.BookingStatus(status)
	if booking.DateTime, err = d.p.ReadLine("\t\tEnter dateTime: "); err != nil {
		return err
	}
	seats, err := d.p.ReadInt("\t\tEnter how many seats: ")
	if err != nil {
		return err
	}
	booking.Seats = int(seats)

	if err := d.workflows.AddBooking(ctx, booking); err != nil {
		return err
	}
	d.p.Printf("Booking %d added\n", booking.ID)
	return nil
}

func (d *Dispatcher) readExistingEmail(ctx context.Context) (string, error) {
	for {
		email, err := d.p.ReadLine("\tEnter an existing email to add a booking: ")
		if err != nil {
			return "", err
		}
		ok, err := d.workflows.Exists(ctx, domain.EntityUser, email)
		if err != nil {
			d.report("add_booking", err)
			continue
		}
		if ok {
			return email, nil
		}
		d.p.Println("Your email does not exist")
	}
}

func (d *Dispatcher) readExistingID(ctx context.Context, prompt string, entity domain.Entity, missing string) (int64, error) {
	for {
		id, err := d.p.ReadInt(prompt)
		if err != nil {
			return 0, err
		}
		ok, err := d.workflows.Exists(ctx, entity, id)
		if err != nil {
			d.report("add_booking", err)
			continue
		}
		if ok {
			return id, nil
		}
		d.p.Println(missing)
	}
}

func (d *Dispatcher) addMovieShowing(ctx context.Context) error {
	movie := &domain.Movie{}
	show := &domain.Show{}
	var err error

	if movie.ID, err = d.p.ReadInt("\t\tEnter movie id: "); err != nil {
		return err
	}
	texts := []struct {
		prompt string
		dst    *string
	}{
		{"\t\tEnter title: ", &movie.Title},
		{"\t\tEnter release date: ", &movie.ReleaseDate},
		{"\t\tEnter country of origin: ", &movie.Country},
		{"\t\tEnter description: ", &movie.Description},
	}
	for _, f := range texts {
		if *f.dst, err = d.p.ReadLine(f.prompt); err != nil {
			return err
		}
	}
	duration, err := d.p.ReadInt("\t\tEnter duration (in seconds): ")
	if err != nil {
		return err
	}
	movie.Duration = int(duration)
	if movie.Language, err = d.p.ReadLine("\t\tEnter language of movie: "); err != nil {
		return err
	}
	if movie.Genre, err = d.p.ReadLine("\t\tEnter genre: "); err != nil {
		return err
	}

	if show.ID, err = d.p.ReadInt("\t\tEnter show id: "); err != nil {
		return err
	}
	show.MovieID = movie.ID
	if show.Date, err = d.p.ReadLine("\t\tEnter show date: "); err != nil {
		return err
	}
	if show.StartTime, err = d.p.ReadLine("\t\tEnter start time: "); err != nil {
		return err
	}
	if show.EndTime, err = d.p.ReadLine("\t\tEnter end time: "); err != nil {
		return err
	}
	theaterID, err := d.p.ReadInt("\t\tEnter theater id: ")
	if err != nil {
		return err
	}

	if err := d.workflows.AddMovieShowing(ctx, movie, show, theaterID); err != nil {
		return err
	}
	d.p.Printf("Movie %d added as show %d in theater %d\n", movie.ID, show.ID, theaterID)
	return nil
}

func (d *Dispatcher) cancelPendingBookings(ctx context.Context) error {
	n, err := d.workflows.CancelPendingBookings(ctx)
	if err != nil {
		return err
	}
	d.p.Printf("%d pending booking(s) cancelled\n", n)
	return nil
}

func (d *Dispatcher) changeSeats(ctx context.Context) error {
	d.p.Println("Please enter the following information: ")
	bookingID, err := d.p.ReadInt("\t\tEnter booking id: ")
	if err != nil {
		return err
	}

	booked, err := d.workflows.ListBookedSeats(ctx)
	if err != nil {
		return err
	}
	d.printSeats("List of show seat ids and prices that you currently booked: ", booked)

	available, err := d.workflows.ListAvailableSeats(ctx, bookingID)
	if err != nil {
		return err
	}
	d.printSeats("List of show seat ids and prices that are available: ", available)

	from, err := d.p.ReadInt("\t\tEnter the original seat (ssid) that you want to change: ")
	if err != nil {
		return err
	}
	to, err := d.p.ReadInt("\t\tEnter new seat (ssid) to change to: ")
	if err != nil {
		return err
	}

	err = d.workflows.ChangeSeat(ctx, workflow.ChangeSeatInput{
		BookingID:  bookingID,
		FromSeatID: from,
		ToSeatID:   to,
		Booked:     booked,
		Available:  available,
	})
	if err != nil {
		return err
	}
	d.p.Printf("Booking %d moved from seat %d to seat %d\n", bookingID, from, to)
	return nil
}

func (d *Dispatcher) printSeats(title string, seats []domain.SeatPrice) {
	d.p.Println(title)
	d.p.Println("ssid\tprice")
	for _, s := range seats {
		d.p.Printf("%s\t%s\n", s.ShowSeatID, s.Price)
	}
}

func (d *Dispatcher) removePayment(ctx context.Context) error {
	bookingID, err := d.p.ReadInt("\t\tEnter booking id: ")
	if err != nil {
		return err
	}
	n, err := d.workflows.RemovePayment(ctx, bookingID)
	if err != nil {
		return err
	}
	d.p.Printf("%d booking(s) cancelled\n", n)
	return nil
}

func (d *Dispatcher) clearCancelledBookings(ctx context.Context) error {
	res, err := d.workflows.ClearCancelledBookings(ctx)
	if err != nil {
		return err
	}
	if res.Empty() {
		d.p.Println("No cancelled bookings to clear")
		return nil
	}
	d.p.Printf("Deleted %d payment(s), %d show seat(s), %d booking(s)\n",
		res.PaymentsDeleted, res.ShowSeatsDeleted, res.BookingsDeleted)
	return nil
}

func (d *Dispatcher) removeShowsOnDate(ctx context.Context) error {
	cinemaID, err := d.p.ReadIntHint("Enter the cinema ID as int: ", invalidChoice)
	if err != nil {
		return err
	}

	shows, err := d.workflows.ShowsAtCinema(ctx, cinemaID)
	if err != nil {
		return err
	}
	d.p.Println("Shows:")
	d.p.Println("sid\tsdate")
	for _, sh := range shows {
		d.p.Printf("%s   %s\n", sh.ShowID, sh.Date)
	}

	date, err := d.readListedDate(shows)
	if err != nil {
		return err
	}

	report, err := d.workflows.RemoveShowsOnDate(ctx, cinemaID, date)
	if err != nil {
		return err
	}
	for _, res := range report.Removed {
		d.p.Printf("Removed show %d: %d booking(s) cancelled, %d payment(s) deleted, %d show seat(s) deleted\n",
			res.ShowID, res.BookingsCancelled, res.PaymentsDeleted, res.ShowSeatsDeleted)
	}
	for _, sid := range report.Failed {
		d.p.Printf("Show %d could not be removed\n", sid)
	}
	return nil
}

// readListedDate loops until the operator enters one of the listed show
// dates, or Q to go back to the menu.
func (d *Dispatcher) readListedDate(shows []domain.ShowDate) (string, error) {
	for {
		line, err := d.p.ReadLine("Enter show start date (Format year-month-day xxxx-xx-xx)[Enter Q to quit and return to menu]: ")
		if err != nil {
			return "", err
		}
		if line == quitSentinel {
			return "", workflow.ErrAborted
		}
		if _, err := console.MatchPattern(console.DatePattern, console.DateHint, line); err != nil {
			d.p.Println(err.Error())
			continue
		}
		if !workflow.DateListed(shows, line) {
			d.p.Println(dateNotListed)
			continue
		}
		return line, nil
	}
}
