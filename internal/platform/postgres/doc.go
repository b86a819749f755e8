// Package postgres implements the store interfaces against a PostgreSQL
// database accessed through database/sql with the pgx driver. It owns the
// translation of driver-level failures (SQLSTATE codes, missing rows) into
// the domain error kinds declared in the store package.
package postgres
