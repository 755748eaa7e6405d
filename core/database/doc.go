// Package database handles the relational store connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration: DSN timeouts, pool sizing, and a silent GORM logger so the
// application's zap logger owns all output.
//
// # Connect
//
// The Connect function establishes and pings the connection. The store holds
// the indicator and release tables the reconciliation engine writes to, and
// the request log the rate limiter counts against.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
