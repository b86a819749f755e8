package store_test

import (
	"database/sql"

	"github.com/userbook/userbook/internal/store"
)

// Both a bare connection and a transaction satisfy DBTX, so query code
// written against it runs unchanged in either position.
var (
	_ store.DBTX = (*sql.DB)(nil)
	_ store.DBTX = (*sql.Tx)(nil)
)
