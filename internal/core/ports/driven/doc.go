// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - TokenStore: token.json persistence for user OAuth tokens
//   - HistoryStore: run history persistence (optional, may be nil)
//   - ConfigStore: application configuration
//   - Authorizer: interactive authorization-code flow
//
// # Import Rules
//
//   - Can Import: domain package and golang.org/x/oauth2 types
//   - Cannot Import: Any adapter or sample package
package driven
