// Package postgres contains the PostgreSQL implementations of the store
// interfaces, the mapping from driver errors to store errors, and the
// embedded schema migrations.
package postgres
