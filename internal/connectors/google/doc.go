// Package google provides shared infrastructure for the Google Workspace samples.
//
// This package contains common utilities used by every sample package:
//   - Clients, a factory for authenticated Google API services
//   - A token source that writes refreshed tokens back to token.json
//   - Error classification for common Google API errors (401, 403, 404, 410, 429)
//   - Request pacing and a sequential pager for nextPageToken loops
//   - OAuth2 scope constants
//
// # Usage
//
// The runner builds one Clients value per run from the authenticated HTTP
// client and hands it to the sample:
//
//	clients := google.NewClients(httpClient)
//	svc, err := clients.Drive(ctx)
//
// Tests point every service at a local fake with WithBaseURL.
package google
