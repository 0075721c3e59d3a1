// Package app wires the catalog, the node library and a wiring script into
// one run. It loads everything up front, applies the script to a fresh graph
// and prints a report of the resolved types, decoupled from any specific
// entrypoint like a CLI.
package app
