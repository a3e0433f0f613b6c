// Package store defines the persistence interfaces for the application's
// domain entities, along with the common error vocabulary shared by all
// implementations. Concrete implementations live under
// internal/platform/postgres.
package store
