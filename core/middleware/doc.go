// Package middleware groups the Fiber middleware registered by the start command.
//
//   - rayid: tags every request with an X-Ray-ID (incoming ids are kept) so
//     log lines of one request can be correlated.
//   - auth: rejects requests without the configured X-API-Key. An empty key
//     leaves the server open, which also keeps the repair endpoint disabled.
package middleware
