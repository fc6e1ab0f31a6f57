package database

import (
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Dialect captures the handful of places where MySQL and SQLite disagree.
type Dialect struct {
	Name string
}

var (
	MySQL  = Dialect{Name: DriverMySQL}
	SQLite = Dialect{Name: DriverSQLite}
)

// sqliteTimeLayout is fixed width so that lexical order equals time order.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000"

// Concat joins SQL expressions into one string expression.
func (d Dialect) Concat(parts ...string) string {
	if d.Name == DriverSQLite {
		return "(" + strings.Join(parts, " || ") + ")"
	}
	return "CONCAT(" + strings.Join(parts, ", ") + ")"
}

// Time converts a timestamp to the value bound for the driver.
func (d Dialect) Time(t time.Time) any {
	t = t.UTC().Truncate(time.Microsecond)
	if d.Name == DriverSQLite {
		return t.Format(sqliteTimeLayout)
	}
	return t
}

// IsDuplicate reports whether err is a unique-constraint violation.
func (d Dialect) IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case 2067, 1555: // SQLITE_CONSTRAINT_UNIQUE, SQLITE_CONSTRAINT_PRIMARYKEY
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
