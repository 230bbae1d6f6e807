package database

import (
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
)

// NullText is how SQL NULL is rendered in a Result.
const NullText = "null"

// Result is a fully read query result, every value in text form.
type Result struct {
	Columns []string
	Rows    [][]string
}

func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Column returns the values of column i, one per row.
func (r *Result) Column(i int) []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}

// Print writes a header line of column names followed by one
// tab-separated line per row. An empty result writes nothing.
func (r *Result) Print(w io.Writer) error {
	if r.Len() == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, strings.Join(r.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func readResult(rows pgx.Rows) (*Result, error) {
	fields := rows.FieldDescriptions()
	res := &Result{Columns: make([]string, len(fields)), Rows: make([][]string, 0)}
	for i, f := range fields {
		res.Columns[i] = f.Name
	}

	for rows.Next() {
		raw := rows.RawValues()
		row := make([]string, len(raw))
		for i, v := range raw {
			if v == nil {
				row[i] = NullText
				continue
			}
			row[i] = string(v)
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}
