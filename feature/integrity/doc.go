// Package integrity provides health checks for the storage the license flows depend on.
//
// # Checks Provided
//
//   - Schema: Validates the license details table against the expected model (columns, types).
//     The backfill command runs the URL column subset of this check before writing.
//   - Archive: Checks that the report archive bucket exists and counts archived reports.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/archive : Runs the archive check.
package integrity
