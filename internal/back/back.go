package back

import (
	"context"

	"rankit/internal/util"

	"github.com/jmoiron/sqlx"
)

// Back holds the storage handle and exposes every ladder operation.
// Exported methods are safe for concurrent use, each mutation runs in a
// single transaction.
type Back struct {
	db *sqlx.DB
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer, funneling everything through one
	// connection serializes concurrent operations instead of surfacing
	// SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	return &Back{
		db: db,
	}, nil
}

func (b *Back) transaction(cb util.TransactionCallback) error {
	return util.Transaction(context.Background(), b.db, cb)
}
