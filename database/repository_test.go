package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows serves canned rows. Methods the repositories do
// not call are left to the embedded nil interface.
type fakeRows struct {
	pgx.Rows
	data   [][]interface{}
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *time.Time:
			*p = row[i].(time.Time)
		case **time.Time:
			if row[i] == nil {
				*p = nil
			} else {
				d := row[i].(time.Time)
				*p = &d
			}
		case *float64:
			*p = row[i].(float64)
		case **string:
			if row[i] == nil {
				*p = nil
			} else {
				s := row[i].(string)
				*p = &s
			}
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

type fakeRow struct {
	rows *fakeRows
	err  error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if !r.rows.Next() {
		return pgx.ErrNoRows
	}
	return r.rows.Scan(dest...)
}

// fakeDB answers Query from rows and QueryRow from row. args holds the
// arguments of the most recent call.
type fakeDB struct {
	rows     *fakeRows
	row      *fakeRows
	queryErr error
	rowErr   error
	queried  bool
	args     []interface{}
}

func (db *fakeDB) Query(_ context.Context, _ string, args ...interface{}) (pgx.Rows, error) {
	db.args = args
	db.queried = true
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return db.rows, nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...interface{}) pgx.Row {
	db.args = args
	if db.row == nil {
		db.row = &fakeRows{}
	}
	return fakeRow{rows: db.row, err: db.rowErr}
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

// firstSale answers the bounds query: first sale date and today.
func firstSale(first interface{}, today time.Time) *fakeRows {
	return &fakeRows{data: [][]interface{}{{first, today}}}
}

func TestRecentDailySalesZeroFillsGaps(t *testing.T) {
	rows := &fakeRows{data: [][]interface{}{
		{day(3), 2.0},
		{day(5), 4.0},
		{day(9), 6.0},
	}}
	db := &fakeDB{row: firstSale(day(1), day(9)), rows: rows}

	history, err := NewSalesRepository(db).RecentDailySales(context.Background(), 11, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 4, 0, 0, 0, 6}, history)
	assert.Equal(t, []interface{}{11, "2025-03-03", "2025-03-09"}, db.args)
	assert.True(t, rows.closed)
}

func TestRecentDailySalesNoSalesInWindow(t *testing.T) {
	db := &fakeDB{row: firstSale(day(1), day(30)), rows: &fakeRows{}}

	history, err := NewSalesRepository(db).RecentDailySales(context.Background(), 11, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0}, history)
}

func TestRecentDailySalesStartsAtFirstSale(t *testing.T) {
	rows := &fakeRows{data: [][]interface{}{
		{day(7), 5.0},
		{day(9), 1.0},
	}}
	db := &fakeDB{row: firstSale(day(7), day(9)), rows: rows}

	history, err := NewSalesRepository(db).RecentDailySales(context.Background(), 11, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 1}, history)
	assert.Equal(t, []interface{}{11, "2025-03-07", "2025-03-09"}, db.args)
}

func TestRecentDailySalesNeverSold(t *testing.T) {
	db := &fakeDB{row: firstSale(nil, day(9))}

	history, err := NewSalesRepository(db).RecentDailySales(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.False(t, db.queried)
}

func TestRecentDailySalesErrors(t *testing.T) {
	_, err := NewSalesRepository(&fakeDB{rowErr: errors.New("conn refused")}).RecentDailySales(context.Background(), 1, 7)
	assert.ErrorContains(t, err, "conn refused")

	db := &fakeDB{row: firstSale(day(1), day(9)), queryErr: errors.New("statement timeout")}
	_, err = NewSalesRepository(db).RecentDailySales(context.Background(), 1, 7)
	assert.ErrorContains(t, err, "statement timeout")

	db = &fakeDB{row: firstSale(day(1), day(9)), rows: &fakeRows{err: errors.New("broken pipe")}}
	_, err = NewSalesRepository(db).RecentDailySales(context.Background(), 1, 7)
	assert.ErrorContains(t, err, "broken pipe")
}

func TestProductName(t *testing.T) {
	db := &fakeDB{row: &fakeRows{data: [][]interface{}{{"Oat Milk 1L"}}}}
	name, err := NewProductRepository(db).ProductName(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Oat Milk 1L", name)
	assert.Equal(t, []interface{}{5}, db.args)
}

func TestProductNameNull(t *testing.T) {
	db := &fakeDB{row: &fakeRows{data: [][]interface{}{{nil}}}}
	name, err := NewProductRepository(db).ProductName(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestProductNameNotFound(t *testing.T) {
	_, err := NewProductRepository(&fakeDB{row: &fakeRows{}}).ProductName(context.Background(), 5)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = NewProductRepository(&fakeDB{rowErr: errors.New("timeout")}).ProductName(context.Background(), 5)
	assert.ErrorContains(t, err, "timeout")
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
