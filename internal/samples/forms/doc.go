// Package forms holds the Google Forms v1 snippets.
package forms
