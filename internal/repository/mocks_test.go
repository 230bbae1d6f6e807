package repository

import (
	"context"
	"strings"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/stretchr/testify/mock"
)

// MockTransactor records every statement; WithTx runs the callback against
// the same mock so the statement order of a transaction can be asserted.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockTransactor) Query(ctx context.Context, sql string, args ...any) (*database.Result, error) {
	ret := m.Called(ctx, sql, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*database.Result), ret.Error(1)
}

func (m *MockTransactor) Exists(ctx context.Context, sql string, args ...any) (bool, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockTransactor) WithTx(ctx context.Context, fn func(database.Executor) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func sqlPrefix(prefix string) any {
	return mock.MatchedBy(func(sql string) bool {
		return strings.HasPrefix(sql, prefix)
	})
}

// statements returns the SQL of every Exec/Query/Exists call in order.
func (m *MockTransactor) statements() []string {
	var out []string
	for _, c := range m.Calls {
		if c.Method == "WithTx" {
			continue
		}
		sql := c.Arguments.String(1)
		if i := strings.IndexAny(sql, "\n\t"); i >= 0 {
			sql = sql[:i]
		}
		out = append(out, strings.TrimSpace(sql))
	}
	return out
}

var _ database.Transactor = (*MockTransactor)(nil)
