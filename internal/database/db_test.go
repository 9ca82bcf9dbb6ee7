package database

import (
	"bytes"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock, *bytes.Buffer) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	var out bytes.Buffer
	return New(gdb, &out), mock, &out
}

func TestQueryCollectReturnsStrings(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT storeID, latitude, longitude FROM Store")).
		WillReturnRows(sqlmock.NewRows([]string{"storeid", "latitude", "longitude"}).
			AddRow(1, 0.5, 10).
			AddRow(2, nil, 3))

	rows, err := db.QueryCollect(context.Background(), "SELECT storeID, latitude, longitude FROM Store")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "0.5", "10"}, {"2", "null", "3"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryCollectEmpty(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT storeID FROM Store WHERE managerID = $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"storeid"}))

	rows, err := db.QueryCollect(context.Background(), "SELECT storeID FROM Store WHERE managerID = ?", 5)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryPrintWritesHeaderAndRows(t *testing.T) {
	db, mock, out := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM Users")).
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name"}).
			AddRow(1, "ada").
			AddRow(2, "bob"))

	n, err := db.QueryPrint(context.Background(), "SELECT * FROM Users")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "userid\tname\n1\tada\n2\tbob\n", out.String())
}

func TestQueryPrintNoRowsPrintsNothing(t *testing.T) {
	db, mock, out := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM Users")).
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name"}))

	n, err := db.QueryPrint(context.Background(), "SELECT * FROM Users")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out.String())
}

func TestQueryCount(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT storeID FROM Store")).
		WillReturnRows(sqlmock.NewRows([]string{"storeid"}).AddRow(1).AddRow(2).AddRow(3))

	n, err := db.QueryCount(context.Background(), "SELECT storeID FROM Store")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExecuteReturnsAffectedRows(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE Users SET name = $1 WHERE userID = $2")).
		WithArgs("ada", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := db.Execute(context.Background(), "UPDATE Users SET name = ? WHERE userID = ?", "ada", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteWrapsServerError(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Users")).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	_, err := db.Execute(context.Background(), "INSERT INTO Users (name) VALUES (?)", "ada")
	require.Error(t, err)

	var dbErr *Error
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "23505", dbErr.Code)
	assert.Equal(t, "SQL Exception (23505): duplicate key value", err.Error())
	assert.False(t, IsConnectionLost(err))
}

func TestLastSeqVal(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT lastval()")).
		WillReturnRows(sqlmock.NewRows([]string{"lastval"}).AddRow(42))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lastval()")).
		WillReturnError(fmt.Errorf("lastval is not yet defined in this session"))

	assert.Equal(t, 42, db.LastSeqVal(context.Background()))
	assert.Equal(t, -1, db.LastSeqVal(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCommits(t *testing.T) {
	db, mock, _ := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Product")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO Orders")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Transaction(context.Background(), func(tx Gateway) error {
		if _, err := tx.Execute(context.Background(), "UPDATE Product SET numberOfUnits = numberOfUnits - ?", 1); err != nil {
			return err
		}
		_, err := tx.Execute(context.Background(), "INSERT INTO Orders (unitsOrdered) VALUES (?)", 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db, mock, _ := newMockDB(t)
	boom := errors.New("insufficient stock")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Product")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.Transaction(context.Background(), func(tx Gateway) error {
		if _, err := tx.Execute(context.Background(), "UPDATE Product SET numberOfUnits = numberOfUnits - ?", 9); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsConnectionLost(t *testing.T) {
	assert.False(t, IsConnectionLost(nil))
	assert.True(t, IsConnectionLost(wrap("query", driver.ErrBadConn)))
	assert.False(t, IsConnectionLost(wrap("query", &pgconn.PgError{Code: "42P01"})))
	assert.False(t, IsConnectionLost(errors.New("syntax error")))
}
