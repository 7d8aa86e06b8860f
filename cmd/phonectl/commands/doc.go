// Package commands defines the phonectl CLI. Every subcommand goes through the
// same method dispatcher the HTTP API serves, in-process, and prints JSON.
//
// Commands
//
//   - parse    Validate a number and print every layout
//   - format   Lay out partial input as it would appear while typing
//   - regions  Print the supported region catalog, or one region of it
//   - call     Invoke a method by name with a JSON argument object
//
// Failures print {"code","message"} on stderr and exit non-zero.
package commands
