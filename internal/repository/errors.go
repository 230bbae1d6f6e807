package repository

import "errors"

// ErrSeatUnavailable is returned when the seat a booking is moved to has
// been reserved since it was listed.
var ErrSeatUnavailable = errors.New("seat is no longer available")

// ErrSeatNotHeld is returned when the seat being given up is not reserved
// by the booking being changed.
var ErrSeatNotHeld = errors.New("seat is not held by the booking")

// ErrUnknownEntity is returned for an existence check on an entity that has
// no table mapping.
var ErrUnknownEntity = errors.New("unknown entity")
