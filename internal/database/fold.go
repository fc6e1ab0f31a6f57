package database

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// sqliteFoldFunc is the SQLite function behind Dialect.Fold.  The built-in
// LOWER only folds ASCII, so "Ñúñez" would never match "ñúñez".
const sqliteFoldFunc = "catalog_fold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteFoldFunc, 1, foldValue); err != nil {
		panic(fmt.Sprintf("database: register %s: %v", sqliteFoldFunc, err))
	}
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return FoldString(v), nil
	case []byte:
		return FoldString(string(v)), nil
	default:
		return FoldString(fmt.Sprint(v)), nil
	}
}

// FoldString applies Unicode case folding.  A Caser keeps state, so each
// call builds its own.
func FoldString(s string) string {
	return cases.Fold().String(s)
}

// Fold wraps a SQL expression so that comparisons ignore case.  Both sides
// of a match must go through Fold to agree.
func (d Dialect) Fold(expr string) string {
	if d.Name == DriverSQLite {
		return sqliteFoldFunc + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}
