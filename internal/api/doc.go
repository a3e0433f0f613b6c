// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public REST API.
package api
