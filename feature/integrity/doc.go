// Package integrity exposes the reference integrity check over HTTP.
//
// # HTTP Endpoints
//
//   - GET /integrity/references : dry-run report (supports ?refresh=true).
//   - POST /integrity/references/repair : clears managed references to missing
//     files. Only registered when repairs are allowed and an API key is set.
//   - GET /integrity/schema : verifies the reference index table columns.
//
// Runs are serialized, and identical concurrent report requests share one run.
package integrity
