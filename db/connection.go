package db

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type DB struct {
	Conn *sqlx.DB
}

func NewDBConn(connString string) (DB, error) {
	conn, err := sqlx.Open("postgres", connString)
	if err != nil {
		return DB{}, err
	}

	return DB{Conn: conn}, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}

// MigrateSchema creates the application tables. The watermill outbox table
// is created separately by the outbox subscriber on startup.
func (db *DB) MigrateSchema() {
	db.Conn.MustExec(schema)
}
