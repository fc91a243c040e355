// Package sheets holds the Google Sheets v4 quickstart and snippets.
package sheets
