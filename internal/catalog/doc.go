// Package catalog binds sample names to their metadata and run functions.
//
// Each API package under internal/samples registers its entries; the
// runner looks samples up by name and calls them with an Env.
package catalog
