// Package console collects typed values from the operator. Every read
// retries until the input is valid; the only error a caller ever sees is
// ErrInputClosed.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrInputClosed is returned once the input stream is exhausted.
var ErrInputClosed = errors.New("input closed")

const InvalidInput = "Invalid input"

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Out() io.Writer {
	return p.out
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// ReadLine prints prompt and returns the next line without its terminator.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadValid reprompts until validate accepts the line, printing the
// validation error each time.
func (p *Prompter) ReadValid(prompt string, validate func(string) error) (string, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if err := validate(line); err != nil {
			p.Println(err.Error())
			continue
		}
		return line, nil
	}
}

func (p *Prompter) ReadInt(prompt string) (int64, error) {
	return p.ReadIntHint(prompt, InvalidInput)
}

// ReadIntHint is ReadInt with a caller-chosen message for non-numeric input.
func (p *Prompter) ReadIntHint(prompt, hint string) (int64, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := ParseInt(line)
		if err != nil {
			p.Println(hint)
			continue
		}
		return n, nil
	}
}

// ReadPattern reprompts until the line matches re, printing hint on mismatch.
func (p *Prompter) ReadPattern(prompt string, re *regexp.Regexp, hint string) (string, error) {
	return p.ReadValid(prompt, func(s string) error {
		_, err := MatchPattern(re, hint, s)
		return err
	})
}
