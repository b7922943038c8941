// Package database provides SQLite connectivity for Hearth Bridge.
//
// This package manages:
//   - Database file creation with restricted permissions
//   - WAL mode and busy timeout configuration
//   - Idempotent schema bootstrap (conversation turns, command audit log)
//   - Connection health monitoring
//
// The database is optional: the bridge runs fully in-memory when
// database.enabled is false, and the stores fall back to their bounded
// in-memory forms.
//
// # Usage
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Bootstrap(ctx); err != nil {
//	    return err
//	}
package database
