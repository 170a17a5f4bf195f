// Package sqlitefn registers a SQLite driver that carries the Go functions
// the catalog queries rely on.
//
// SQLite's built-in LOWER only folds ASCII letters, so "Čapek" and "čapek"
// would not match each other. The driver registered here adds
// unicode_lower(x), which lowercases with strings.ToLower and passes
// non-text values through as NULL.
package sqlitefn

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DriverName is the database/sql driver name with the catalog functions.
const DriverName = "sqlite3_bookshelf"

// UnicodeLower is the SQL name of the Unicode-aware lowercase function.
const UnicodeLower = "unicode_lower"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(UnicodeLower, unicodeLower, true)
		},
	})
}

// Open returns a gorm dialector for dsn using the catalog driver.
func Open(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: DriverName, DSN: dsn})
}

// unicodeLower receives NULL as a nil []byte and BLOBs as []byte.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return nil
	}
}
