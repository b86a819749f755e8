// Package service contains the orchestration layer: it sequences
// read-modify-write flows over the user store, normalizes and validates
// input before anything reaches the database, enforces the email
// uniqueness pre-check, and presents a uniform error surface in which
// classified store errors pass through untouched and everything else
// collapses into an OperationError.
package service
