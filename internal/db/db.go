package db

import "database/sql"

// DB wraps the shared sql.DB handle so store constructors take one
// explicit dependency instead of an ambient connection.
type DB struct {
	*sql.DB
}
