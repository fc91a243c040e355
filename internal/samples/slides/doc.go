// Package slides holds the Google Slides v1 quickstart and snippets.
//
// Snippets that add page elements take an optional object ID; when it is
// empty a random one is generated.
package slides
