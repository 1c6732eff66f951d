// Package remote is the client of the third-party reporting API.
//
// The API takes form-encoded POST requests selecting an action
// (API_REPORT_LICENSE_DETAILS, API_GET_CLIENT_LIST) and answers with a nested JSON
// container whose innermost field is the record array:
//
//	{"message": {"licenses": {"license": [ ... ]}}}
//	{"message": {"clients":  {"client":  [ ... ]}}}
//
// Records are returned raw (json.RawMessage); decoding into domain types belongs to the
// feature packages.
//
// # Failure policy
//
// A response whose container is missing, null or not an array counts as an empty page
// for both collections. Network failures, timeouts (30s by default) and non-2xx statuses
// are TransportError values and are never retried.
//
// # Pagination
//
// Collector requests page 1, 2, ... and stops at the first empty page. MaxPages turns
// a runaway collection into ErrPageLimit instead of an endless loop.
package remote
