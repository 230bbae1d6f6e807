// Package menu is the operator-facing text menu. Each entry gathers its
// input through a console.Prompter, calls a service and prints the outcome;
// failures are reported and control always returns to the menu.
package menu

import (
	"context"
	"errors"

	"github.com/Domenick1991/ticketmaster/internal/console"
	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/repository"
	"github.com/Domenick1991/ticketmaster/internal/service/reports"
	"github.com/Domenick1991/ticketmaster/internal/service/workflow"
	"go.uber.org/zap"
)

const (
	ExitChoice     = 15
	invalidChoice  = "Your input is invalid!"
	pricesMismatch = "ERROR: Prices don't match"
	noShows        = "This cinema currently has no shows. Returning to main menu..."
	noCinemas      = "There are no cinemas. Returning to main menu..."
	dateNotListed  = "Entered date does not match the available options."
	endBeforeStart = "Error: Given end date is a date earlier than the start date."
	quitSentinel   = "Q"
)

type entry struct {
	name  string
	label string
	run   func(ctx context.Context) error
}

type Dispatcher struct {
	p         *console.Prompter
	workflows workflow.WorkflowUseCase
	reports   reports.ReportUseCase
	log       *zap.Logger
	entries   []entry
}

func NewDispatcher(p *console.Prompter, workflows workflow.WorkflowUseCase, reports reports.ReportUseCase, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{p: p, workflows: workflows, reports: reports, log: log}
	d.entries = []entry{
		{"add_user", "Add User", d.addUser},
		{"add_booking", "Add Booking", d.addBooking},
		{"add_movie_showing", "Add Movie Showing for an Existing Theater", d.addMovieShowing},
		{"cancel_pending_bookings", "Cancel Pending Bookings", d.cancelPendingBookings},
		{"change_seats", "Change Seats Reserved for a Booking", d.changeSeats},
		{"remove_payment", "Remove a Payment", d.removePayment},
		{"clear_cancelled_bookings", "Clear Cancelled Bookings", d.clearCancelledBookings},
		{"remove_shows_on_date", "Remove Shows on a Given Date", d.removeShowsOnDate},
		{"theaters_playing_show", "List all Theaters in a Cinema Playing a Given Show", d.listTheatersPlayingShow},
		{"shows_starting_at", "List all Shows that Start at a Given Time and Date", d.listShowsStartingAt},
		{"movie_titles", `List Movie Titles Containing "love" Released After 2010`, d.listMovieTitles},
		{"users_with_pending_booking", "List the First Name, Last Name, and Email of Users with a Pending Booking", d.listUsersWithPendingBooking},
		{"movie_shows_at_cinema", "List the Title, Duration, Date, and Time of Shows Playing a Given Movie at a Given Cinema During a Date Range", d.listMovieShowsAtCinema},
		{"bookings_for_user", "List the Movie Title, Show Date & Start Time, Theater Name, and Cinema Seat Number for all Bookings of a Given User", d.listBookingsForUser},
	}
	return d
}

// Run shows the menu until the operator exits or input is exhausted.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.printMenu()

		choice, err := d.p.ReadIntHint("Please make your choice: ", invalidChoice)
		if errors.Is(err, console.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == ExitChoice {
			return nil
		}
		if choice < 1 || choice > int64(len(d.entries)) {
			d.p.Println("Unrecognized choice!")
			continue
		}

		e := d.entries[choice-1]
		if err := e.run(ctx); err != nil {
			if errors.Is(err, console.ErrInputClosed) {
				return nil
			}
			d.report(e.name, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (d *Dispatcher) printMenu() {
	d.p.Println("MAIN MENU")
	d.p.Println("---------")
	for i, e := range d.entries {
		d.p.Printf("%d. %s\n", i+1, e.label)
	}
	d.p.Printf("%d. EXIT\n", ExitChoice)
}

// report tells the operator why an entry stopped. Statement failures go to
// the log with the driver message.
func (d *Dispatcher) report(name string, err error) {
	var stmtErr *database.StatementError
	switch {
	case errors.Is(err, workflow.ErrAborted):
	case errors.Is(err, workflow.ErrPriceMismatch):
		d.p.Println(pricesMismatch)
	case errors.Is(err, workflow.ErrNoShows):
		d.p.Println(noShows)
	case errors.Is(err, reports.ErrNoCinemas):
		d.p.Println(noCinemas)
	case errors.Is(err, repository.ErrSeatUnavailable):
		d.p.Println("ERROR: The new seat is no longer available")
	case errors.Is(err, repository.ErrSeatNotHeld):
		d.p.Println("ERROR: The current seat is not reserved by this booking")
	case errors.As(err, &stmtErr):
		d.log.Error("statement failed",
			zap.String("workflow", name),
			zap.Bool("constraint_violation", database.IsConstraintViolation(err)),
			zap.String("sql", stmtErr.SQL),
			zap.Error(err),
		)
		d.p.Println("SQL Error")
	default:
		d.log.Error("workflow failed", zap.String("workflow", name), zap.Error(err))
		d.p.Printf("Error: %v\n", err)
	}
}

func (d *Dispatcher) printResult(res *database.Result) error {
	if err := res.Print(d.p.Out()); err != nil {
		return err
	}
	d.p.Printf("total row(s): %d\n", res.Len())
	return nil
}
