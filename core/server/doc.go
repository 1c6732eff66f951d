// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// settings it needs: listen port, API key and the lifetime of the cached client
// directory used by the resolve endpoint.
package server
