// Package http contains the HTTP transport layer: chi handlers that decode
// and validate requests, call into the service layer, and render JSON or
// CSV responses. Handlers hold no business logic.
package http
