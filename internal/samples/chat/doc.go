// Package chat holds the Google Chat v1 quickstart and snippets.
//
// Resource names are passed through as the API expects them: spaces are
// "spaces/AAA", messages "spaces/AAA/messages/BBB".
package chat
