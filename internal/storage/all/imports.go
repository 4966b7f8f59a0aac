// Package all wires every built-in storage backend into the storage
// registry. It exists purely for side effects: blank-importing it runs
// the init functions of each backend, making "sqlite", "postgres",
// "mysql" and "mssql" resolvable through storage.Open.
//
// Binaries that only need a subset can import the individual backend
// packages instead.
package all

import (
	_ "orderetl/internal/storage/mssql"
	_ "orderetl/internal/storage/mysql"
	_ "orderetl/internal/storage/postgres"
	_ "orderetl/internal/storage/sqlite"
)
