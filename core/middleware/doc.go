// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation (X-API-Key header or api_key query parameter).
//   - RayID: Assigns a unique request id (RayID) to every request, stores it in the
//     context locals for logger.WithRayID and echoes it in the response headers.
//
// Both are registered globally in the start command, RayID first.
package middleware
