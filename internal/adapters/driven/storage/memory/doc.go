// Package memory provides in-memory implementations of the driven ports.
// They back tests and runs with history disabled.
package memory
