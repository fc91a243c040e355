// Package domain defines the core types for wsamples.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - OAuthToken / StoredToken: user credentials persisted in token.json
//   - ClientSecrets: the parsed credentials.json (OAuth client or service account)
//   - Sample: a catalog entry describing one quickstart or snippet
//   - RunRecord: one execution of a sample, kept in the run history
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
