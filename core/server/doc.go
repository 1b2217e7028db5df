// Package server holds the HTTP server configuration.
//
// The server exposes the reference integrity report, and optionally the
// repair endpoint, for dashboards and schedulers that prefer HTTP over the CLI.
package server
