// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL connection (production) or a SQLite
// database (tests, small installs) from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the integrity checks verify that the
// reference index table carries every column the configured profile maps.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	missing, err := database.MissingColumns(db, "sys_refindex", []string{"hash"})
package database
