package database

import (
	"database/sql"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqliteDriverName = "sqlite3_unicode"

var registerSQLite sync.Once

// SQLite opens dsn through a driver whose lower() and upper() fold every
// Unicode letter. The built-in sqlite versions only touch ASCII.
func SQLite(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterFunc("lower", strings.ToLower, true); err != nil {
					return err
				}
				return conn.RegisterFunc("upper", strings.ToUpper, true)
			},
		})
	})
	return &sqlite.Dialector{DriverName: sqliteDriverName, DSN: dsn}
}
