package console

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	DatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	TimePattern  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	EmailPattern = regexp.MustCompile(`^\w+@\w+\.\w+$`)
)

var ErrNotInteger = errors.New("not an integer")

// PatternError reports input that does not match the expected shape.
type PatternError struct {
	Input string
	Hint  string
}

func (e *PatternError) Error() string {
	return e.Hint
}

// ParseInt accepts an optionally signed base-10 integer surrounded by spaces.
func ParseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}

func MatchPattern(re *regexp.Regexp, hint, s string) (string, error) {
	if !re.MatchString(s) {
		return "", &PatternError{Input: s, Hint: hint}
	}
	return s, nil
}

// ParseDate validates YYYY-MM-DD and that it names a real calendar day.
func ParseDate(s string) (time.Time, error) {
	if _, err := MatchPattern(DatePattern, DateHint, s); err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, &PatternError{Input: s, Hint: DateHint}
	}
	return d, nil
}

const (
	DateHint  = "Pattern does not match! Pattern is xxxx-xx-xx (year-month-day)"
	TimeHint  = "Pattern does not match! Pattern is 00:00:00 (hr:min:sec)"
	EmailHint = "Not in expected format. Enter in format: [letters or numbers]@[domain]"
)
