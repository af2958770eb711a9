// Package database provides the Postgres connection pool used by the
// top-coins snapshot recorder.
package database
