// Package drive holds the Google Drive v3 quickstart and snippets.
//
// Every function takes an authenticated *drive.Service and performs one
// or two API calls. Listing functions page through nextPageToken one
// page at a time.
package drive
