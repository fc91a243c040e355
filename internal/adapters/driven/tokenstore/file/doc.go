// Package file stores the user's OAuth token as token.json.
package file
