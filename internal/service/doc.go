// Package service contains the application services that orchestrate
// domain objects, stores, and the generation pipeline. Services own
// transaction boundaries; handlers own HTTP concerns.
package service
