// Package app wires the configuration, logging, metrics, services and HTTP
// transport into a runnable server with graceful shutdown.
package app
