// Package exporter renders analysis results as CSV, both for browser
// downloads and for batch reports written to disk. Unavailable statistics
// appear as empty cells so spreadsheets never see a sentinel number.
package exporter
