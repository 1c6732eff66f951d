// Package license ingests the remote license details report, enriches it with
// customer URLs from the client directory and serves the stored rows.
//
// # Flows
//
//   - Ingest: collect every page of a date window, enrich, replace the window's rows
//     in the database and optionally archive the report to object storage.
//   - Backfill: write directory URLs into rows stored before enrichment existed.
//     Updates are keyed by customer_name and apply to every row sharing that name.
//   - Serve: list customers and page through stored rows.
//
// Enrichment and backfill resolve names the same way (see core/reconcile), so a
// name that matches in one flow matches in the other.
//
// # HTTP Endpoints
//
//   - GET /license/customers : Distinct customer names.
//   - POST /license/details : One page (100 rows) of stored details.
package license
