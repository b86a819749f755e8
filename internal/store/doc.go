// Package store defines the persistence abstractions of the application:
// the UserStore interface implemented by the storage backend, the closed
// taxonomy of domain errors that callers branch on, and the transaction
// helpers that guarantee every unit of work ends in a terminal state
// (committed or rolled back).
package store
