// Package directory reads the remote client directory and resolves customer names
// against it.
//
// The directory is fetched through the paginated collector even though the list
// endpoint returns everything at once, so every remote collection goes through the
// same termination rule.
//
// # Components
//
//   - Fetcher: Reads and decodes the complete client list.
//   - Service: Keeps a TTL cache of the name index for the HTTP server.
//   - Handler: Exposes the resolve endpoint.
//
// # HTTP Endpoints
//
//   - GET /directory/resolve?name= : Resolve a customer name (400 when the name is blank).
package directory
