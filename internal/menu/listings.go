package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/ticketmaster/internal/console"
	"github.com/Domenick1991/ticketmaster/internal/domain"
	"github.com/Domenick1991/ticketmaster/internal/service/reports"
)

func (d *Dispatcher) listTheatersPlayingShow(ctx context.Context) error {
	cinemaID, err := d.p.ReadIntHint("Enter cinema ID: ", invalidChoice)
	if err != nil {
		return err
	}
	showID, err := d.p.ReadIntHint("Enter show ID: ", invalidChoice)
	if err != nil {
		return err
	}

	res, err := d.reports.TheatersPlayingShow(ctx, cinemaID, showID)
	if err != nil {
		return err
	}
	return d.printResult(res)
}

func (d *Dispatcher) listShowsStartingAt(ctx context.Context) error {
	startTime, err := d.p.ReadPattern("Enter time: ", console.TimePattern, console.TimeHint)
	if err != nil {
		return err
	}
	date, err := d.p.ReadPattern("Enter date: ", console.DatePattern, console.DateHint)
	if err != nil {
		return err
	}

	res, err := d.reports.ShowsStartingAt(ctx, startTime, date)
	if err != nil {
		return err
	}
	return d.printResult(res)
}

func (d *Dispatcher) listMovieTitles(ctx context.Context) error {
	res, err := d.reports.MovieTitles(ctx, reports.DefaultTitleFilter, reports.DefaultReleasedAfter)
	if err != nil {
		return err
	}
	return d.printResult(res)
}

func (d *Dispatcher) listUsersWithPendingBooking(ctx context.Context) error {
	res, err := d.reports.UsersWithPendingBooking(ctx)
	if err != nil {
		return err
	}
	return d.printResult(res)
}

func (d *Dispatcher) listMovieShowsAtCinema(ctx context.Context) error {
	cinemas, err := d.reports.Cinemas(ctx)
	if err != nil {
		return err
	}
	d.p.Println("Cinemas:")
	d.p.Println("cid\tcname")
	d.p.Println("-------")
	for _, c := range cinemas[:min(len(cinemas), reports.CinemaListLimit)] {
		d.p.Printf("%d   %s\n", c.ID, c.Name)
	}

	input := reports.DateRangeInput{}
	if input.CinemaID, err = d.readListedCinema(cinemas); err != nil {
		return err
	}

	if input.From, err = d.p.ReadValid("Enter show start date (Format year-month-day xxxx-xx-xx): ", func(s string) error {
		_, err := console.ParseDate(s)
		return err
	}); err != nil {
		return err
	}
	if input.To, err = d.p.ReadValid("Enter show end date (Format year-month-day xxxx-xx-xx): ", func(s string) error {
		err := reports.CheckRange(input.From, s)
		if errors.Is(err, reports.ErrEndBeforeStart) {
			return errors.New(endBeforeStart)
		}
		return err
	}); err != nil {
		return err
	}
	if input.Title, err = d.p.ReadLine("Enter movie title: "); err != nil {
		return err
	}

	res, err := d.reports.MovieShowsAtCinema(ctx, input)
	if err != nil {
		return err
	}
	return d.printResult(res)
}

// readListedCinema only accepts the id of an existing cinema, listed or not.
func (d *Dispatcher) readListedCinema(cinemas []domain.Cinema) (int64, error) {
	listed := make(map[int64]bool, len(cinemas))
	for _, c := range cinemas {
		listed[c.ID] = true
	}

	var id int64
	_, err := d.p.ReadValid("Enter cinema ID: ", func(s string) error {
		n, err := console.ParseInt(s)
		if err != nil {
			return errors.New("Your input is invalid! Must enter as integer")
		}
		if !listed[n] {
			return fmt.Errorf("Cinema %d does not exist", n)
		}
		id = n
		return nil
	})
	return id, err
}

func (d *Dispatcher) listBookingsForUser(ctx context.Context) error {
	email, err := d.p.ReadPattern("Enter user email: ", console.EmailPattern, console.EmailHint)
	if err != nil {
		return err
	}

	res, err := d.reports.BookingsForUser(ctx, email)
	if err != nil {
		return err
	}
	return d.printResult(res)
}
