// Package mocks provides hand-written test doubles for interfaces that
// cross package boundaries. Each mock exposes function fields so tests
// can script behavior per call.
package mocks
