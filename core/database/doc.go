// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections (the production licensing database)
// and SQLite connections (local runs and tests) from the application's configuration.
//
// # Connect
//
// Connect opens and pings a connection pool. A pool is scoped to one run: the CLI
// commands defer Close so the pool is released on every exit path, error paths included.
//
// # Schema Inspection
//
// GetTableColumns reads the live column list (SHOW COLUMNS on MySQL, PRAGMA table_info
// on SQLite). The integrity feature compares it with the gorm model of the licensing
// table, and the backfill refuses to start when the URL columns are missing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	columns, err := database.GetTableColumns(db, "API_REPORT_LICENSE_DETAILS")
package database
