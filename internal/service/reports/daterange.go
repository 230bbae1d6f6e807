package reports

import (
	"fmt"

	"github.com/Domenick1991/ticketmaster/internal/console"
)

// CheckRange validates both dates and that to is not before from.
func CheckRange(from, to string) error {
	start, err := console.ParseDate(from)
	if err != nil {
		return err
	}
	end, err := console.ParseDate(to)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, to, from)
	}
	return nil
}
